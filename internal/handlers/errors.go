package handlers

import (
	domainErrors "btcledger/internal/errors"
	"btcledger/internal/logger"
	"btcledger/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var statusByCode = map[string]int{
	domainErrors.ErrInvalidAPIKey.Code:          fiber.StatusUnauthorized,
	domainErrors.ErrEmailAlreadyExists.Code:     fiber.StatusConflict,
	domainErrors.ErrWalletsLimitExceeded.Code:   fiber.StatusConflict,
	domainErrors.ErrWalletNotFound.Code:         fiber.StatusNotFound,
	domainErrors.ErrWalletPermissionDenied.Code: fiber.StatusForbidden,
	domainErrors.ErrSameWalletTransfer.Code:     fiber.StatusBadRequest,
	domainErrors.ErrInsufficientBalance.Code:    fiber.StatusConflict,
	domainErrors.ErrInvalidAmount.Code:          fiber.StatusBadRequest,
}

// statusFor maps an error kind to its HTTP status. Unknown errors are 500.
func statusFor(err error) int {
	if status, ok := statusByCode[domainErrors.Code(err)]; ok {
		return status
	}
	return fiber.StatusInternalServerError
}

// writeError renders err. Internal errors are logged and their detail hidden.
func writeError(c *fiber.Ctx, err error) error {
	kind, ok := domainErrors.Kind(err)
	if !ok {
		logger.Error(c.UserContext(), "request failed",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return response.ServerError(c, "internal server error")
	}
	return response.Error(c, statusFor(err), kind.Code, kind.Message)
}

func validationError(c *fiber.Ctx, err error) error {
	return response.Error(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
}
