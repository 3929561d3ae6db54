package handlers

import (
	"btcledger/internal/middleware"
	"btcledger/internal/services/rate"
	"btcledger/internal/services/statistics"
	"btcledger/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type StatisticsHandler struct {
	statisticsService statistics.Service
	presenter         presenter
}

func NewStatisticsHandler(statisticsService statistics.Service, rates rate.Provider) *StatisticsHandler {
	return &StatisticsHandler{
		statisticsService: statisticsService,
		presenter:         presenter{rates: rates},
	}
}

// GetStatistics handles GET /statistics. The api_key header must carry the
// admin key.
func (h *StatisticsHandler) GetStatistics(c *fiber.Ctx) error {
	ctx := c.UserContext()
	stats, err := h.statisticsService.Get(ctx, middleware.APIKey(c))
	if err != nil {
		return writeError(c, err)
	}
	return response.OK(c, "statistic", h.presenter.statistic(ctx, stats))
}
