package repositories

import (
	"context"
	"fmt"

	"btcledger/internal/domain/btc"
	"btcledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Append(ctx context.Context, tx *models.Transaction) error {
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) ListByAddresses(ctx context.Context, addresses []string) ([]*models.Transaction, error) {
	txs := make([]*models.Transaction, 0)
	if len(addresses) == 0 {
		return txs, nil
	}

	err := r.db.WithContext(ctx).
		Where("from_address IN ? OR to_address IN ?", addresses, addresses).
		Order("id ASC").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	for _, tx := range txs {
		tx.Amount = btc.Align(tx.Amount)
		tx.Fee = btc.Align(tx.Fee)
	}
	return txs, nil
}

func (r *transactionRepository) Stats(ctx context.Context) (*models.Statistic, error) {
	var row struct {
		TotalTransactions int64
		Profit            decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("COUNT(*) AS total_transactions, COALESCE(SUM(fee), 0) AS profit").
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction stats: %w", err)
	}
	return &models.Statistic{
		TotalTransactions: row.TotalTransactions,
		Profit:            btc.Align(row.Profit),
	}, nil
}
