// Package rate provides the BTC to USD exchange rate used to present
// balances and profit in dollars. The ledger itself never reads it.
package rate

import (
	"context"
	"errors"
)

var ErrRateUnavailable = errors.New("exchange rate unavailable")

// Provider returns the current price of one bitcoin in USD.
type Provider interface {
	CurrentRate(ctx context.Context) (float64, error)
}

// Fake always returns a fixed rate.
type Fake struct {
	Rate float64
}

func (f Fake) CurrentRate(context.Context) (float64, error) {
	return f.Rate, nil
}
