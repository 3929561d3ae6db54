package rate

import (
	"context"
	"time"

	"btcledger/internal/logger"
	"btcledger/internal/metrics"
	"btcledger/internal/utils/cache"

	"go.uber.org/zap"
)

// RateCache stores fetched rates. It is satisfied by cache.CacheService.
type RateCache interface {
	GetRate(ctx context.Context, key string) (float64, bool, error)
	SetRate(ctx context.Context, key string, rate float64, ttl time.Duration) error
}

// Cached serves the rate from a cache and refreshes it from next on a miss.
// Cache faults fall through to next.
type Cached struct {
	next    Provider
	cache   RateCache
	ttl     time.Duration
	key     string
	metrics metrics.MetricsCollector
}

func NewCached(next Provider, rc RateCache, ttl time.Duration, collector metrics.MetricsCollector) *Cached {
	if collector == nil {
		collector = metrics.NoopMetricsCollector{}
	}
	return &Cached{
		next:    next,
		cache:   rc,
		ttl:     ttl,
		key:     cache.RateKey("btc", "usd"),
		metrics: collector,
	}
}

func (c *Cached) CurrentRate(ctx context.Context) (float64, error) {
	rate, found, err := c.cache.GetRate(ctx, c.key)
	if err != nil {
		logger.Warn(ctx, "rate cache read failed", zap.Error(err))
	}
	if found {
		c.metrics.RecordRateLookup("cache", "hit")
		return rate, nil
	}
	c.metrics.RecordRateLookup("cache", "miss")

	rate, err = c.next.CurrentRate(ctx)
	if err != nil {
		return 0, err
	}

	if err := c.cache.SetRate(ctx, c.key, rate, c.ttl); err != nil {
		logger.Warn(ctx, "rate cache write failed", zap.Error(err))
	}
	return rate, nil
}
