// Package middleware provides HTTP middleware components for the application.
// It extracts the caller credential and carries request scoped values into
// the context handed to services.
package middleware

import (
	"btcledger/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// APIKeyHeader is the request header carrying the caller's API key.
const APIKeyHeader = "api_key"

const apiKeyLocal = "api_key"

// ExtractAPIKey stores the api_key header in the request locals. A missing
// header is stored as the empty key, which no user holds.
func ExtractAPIKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(apiKeyLocal, c.Get(APIKeyHeader))
		return c.Next()
	}
}

// APIKey returns the key stored by ExtractAPIKey.
func APIKey(c *fiber.Ctx) string {
	key, _ := c.Locals(apiKeyLocal).(string)
	return key
}

// RequestContext copies the request id set by the requestid middleware into
// the user context so service logs carry it.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok && id != "" {
			c.SetUserContext(logger.WithRequestID(c.UserContext(), id))
		}
		return c.Next()
	}
}
