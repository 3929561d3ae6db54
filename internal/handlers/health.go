package handlers

import (
	"context"
	"time"

	"btcledger/internal/logger"
	"btcledger/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Pinger is a dependency whose reachability is reported by /health.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

type HealthHandler struct {
	store repositories.Store
	cache Pinger
}

// NewHealthHandler reports on store and, when cache is non-nil, the cache.
func NewHealthHandler(store repositories.Store, cache Pinger) *HealthHandler {
	return &HealthHandler{store: store, cache: cache}
}

func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	services := fiber.Map{"database": "connected"}
	if err := h.store.Ping(ctx); err != nil {
		logger.Error(ctx, "health check: store unreachable", zap.Error(err))
		services["database"] = "unreachable"
		status = fiber.StatusServiceUnavailable
	}
	if h.cache != nil {
		services["redis"] = "connected"
		if err := h.cache.HealthCheck(ctx); err != nil {
			logger.Warn(ctx, "health check: cache unreachable", zap.Error(err))
			services["redis"] = "unreachable"
		}
	}

	state := "ok"
	if status != fiber.StatusOK {
		state = "degraded"
	}
	return c.Status(status).JSON(fiber.Map{
		"status":   state,
		"services": services,
	})
}
