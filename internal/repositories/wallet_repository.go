package repositories

import (
	"context"
	"errors"

	"btcledger/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrWalletNotFound  = errors.New("wallet not found")
	ErrDuplicateWallet = errors.New("wallet already exists")
)

// WalletRepository defines the persistence operations for wallets
type WalletRepository interface {
	Create(ctx context.Context, wallet *models.Wallet) error
	GetByAddress(ctx context.Context, address string) (*models.Wallet, error)

	// ListByUserID returns the user's wallets in creation order
	ListByUserID(ctx context.Context, userID string) ([]*models.Wallet, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)

	// UpdateBalance overwrites the stored balance of a wallet
	UpdateBalance(ctx context.Context, address string, balance decimal.Decimal) error

	// LockForUpdate holds the rows of the given wallets, taken in address
	// order, until the surrounding transaction ends. Missing addresses are
	// skipped.
	LockForUpdate(ctx context.Context, addresses ...string) error
}
