package wallet

import (
	"context"

	"btcledger/internal/models"
	"btcledger/internal/repositories"

	"github.com/shopspring/decimal"
)

// Default configuration values
const (
	DefaultLimit = 3
)

// DefaultStartingBalance is credited to every new wallet, in BTC.
var DefaultStartingBalance = decimal.NewFromInt(1)

// WalletConfig holds the registry limits
type WalletConfig struct {
	Limit           int
	StartingBalance decimal.Decimal
}

// Service defines the wallet registry
type Service interface {
	Create(ctx context.Context, apiKey string) (*models.Wallet, error)
	Read(ctx context.Context, address, apiKey string, checkPermission bool) (*models.Wallet, error)
	ReadAll(ctx context.Context, apiKey string) ([]*models.Wallet, error)

	// UpdateBalance overwrites a wallet's balance. It performs no
	// authorization; callers validate the change first.
	UpdateBalance(ctx context.Context, address string, balance decimal.Decimal) error

	// WithStore returns a registry that reads and writes through store.
	WithStore(store repositories.Store) Service
}
