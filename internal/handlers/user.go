package handlers

import (
	"btcledger/internal/services/user"
	"btcledger/internal/utils/response"
	"btcledger/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Register handles POST /users.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var input validation.RegisterUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.UserRegistration(&input)
	if !v.Valid() {
		return validationError(c, v.First())
	}

	u, err := h.userService.Register(c.UserContext(), input.Email)
	if err != nil {
		return writeError(c, err)
	}

	return response.Created(c, "user", userView{
		ID:     u.ID,
		Email:  u.Email,
		APIKey: u.APIKey,
	})
}
