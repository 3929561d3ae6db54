package response

import (
	"github.com/gofiber/fiber/v2"
)

// Envelope writes {key: data} with the given status.
func Envelope(c *fiber.Ctx, status int, key string, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{key: data})
}

// OK writes a 200 envelope.
func OK(c *fiber.Ctx, key string, data interface{}) error {
	return Envelope(c, fiber.StatusOK, key, data)
}

// Created writes a 201 envelope.
func Created(c *fiber.Ctx, key string, data interface{}) error {
	return Envelope(c, fiber.StatusCreated, key, data)
}

// Error writes {"error": {"code": ..., "message": ...}}.
func Error(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, "BAD_REQUEST", message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, "INTERNAL", message)
}
