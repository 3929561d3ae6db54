package repositories

import (
	"context"

	"btcledger/internal/models"
)

// TransactionRepository is the append-only transaction log
type TransactionRepository interface {
	Append(ctx context.Context, tx *models.Transaction) error

	// ListByAddresses returns, in ledger order, every transaction with an
	// endpoint in addresses
	ListByAddresses(ctx context.Context, addresses []string) ([]*models.Transaction, error)

	// Stats returns the transaction count and the sum of all fees
	Stats(ctx context.Context) (*models.Statistic, error)
}
