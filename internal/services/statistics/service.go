package statistics

import (
	"context"
	"crypto/subtle"

	domainErrors "btcledger/internal/errors"
	"btcledger/internal/models"
	"btcledger/internal/repositories"
)

// Service aggregates the transaction log for the ledger operator.
type Service interface {
	// Get returns the transaction count and the sum of all fees. It fails
	// with ErrInvalidAPIKey unless adminKey equals the configured admin key.
	Get(ctx context.Context, adminKey string) (*models.Statistic, error)
}

type service struct {
	txRepo   repositories.TransactionRepository
	adminKey string
}

// NewService returns a statistics service. An empty adminKey rejects every
// caller.
func NewService(txRepo repositories.TransactionRepository, adminKey string) Service {
	return &service{
		txRepo:   txRepo,
		adminKey: adminKey,
	}
}

func (s *service) Get(ctx context.Context, adminKey string) (*models.Statistic, error) {
	if s.adminKey == "" || subtle.ConstantTimeCompare([]byte(adminKey), []byte(s.adminKey)) != 1 {
		return nil, domainErrors.Wrap(domainErrors.ErrInvalidAPIKey, "admin key rejected")
	}
	return s.txRepo.Stats(ctx)
}
