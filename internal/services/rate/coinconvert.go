package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"btcledger/internal/logger"
	"btcledger/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const (
	DefaultTimeout           = 5 * time.Second
	breakerName              = "coinconvert"
	tripConsecutiveFailures  = 3
	defaultBreakerOpenPeriod = 30 * time.Second
)

type coinConvertResponse struct {
	USD float64 `json:"USD"`
}

// CoinConvert fetches the rate from a coinconvert style endpoint:
// GET {URL}?amount=1 answering {"USD": <price>}.
type CoinConvert struct {
	url     string
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[float64]
	metrics metrics.MetricsCollector
}

func NewCoinConvert(url string, timeout time.Duration, collector metrics.MetricsCollector) *CoinConvert {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if collector == nil {
		collector = metrics.NoopMetricsCollector{}
	}

	c := &CoinConvert{
		url:     url,
		timeout: timeout,
		metrics: collector,
	}
	c.breaker = gobreaker.NewCircuitBreaker[float64](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     defaultBreakerOpenPeriod,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= tripConsecutiveFailures
		},
		IsSuccessful: isSuccessfulForBreaker,
		OnStateChange: func(name string, from, to gobreaker.State) {
			collector.RecordBreakerState(name, to.String())
			logger.Log.Warn("rate circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return c
}

// isSuccessfulForBreaker keeps the caller giving up on a lookup from counting
// against the upstream.
func isSuccessfulForBreaker(err error) bool {
	return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (c *CoinConvert) CurrentRate(ctx context.Context) (float64, error) {
	rate, err := c.breaker.Execute(func() (float64, error) {
		return c.fetch(ctx)
	})
	if err != nil {
		c.metrics.RecordRateLookup(breakerName, "error")
		return 0, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}
	c.metrics.RecordRateLookup(breakerName, "ok")
	return rate, nil
}

func (c *CoinConvert) fetch(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var body coinConvertResponse
	agent := fiber.Get(c.url).QueryString("amount=1").Timeout(c.timeout)
	if err := agent.Parse(); err != nil {
		return 0, fmt.Errorf("failed to build rate request: %w", err)
	}
	status, _, errs := agent.Struct(&body)
	if len(errs) > 0 {
		return 0, fmt.Errorf("failed to fetch rate: %w", errs[0])
	}
	if status != fiber.StatusOK {
		return 0, fmt.Errorf("rate endpoint returned status %d", status)
	}
	if body.USD <= 0 {
		return 0, fmt.Errorf("rate endpoint returned non-positive rate %v", body.USD)
	}
	return body.USD, nil
}
