package wallet

import (
	"context"
	"errors"

	"btcledger/internal/domain/btc"
	domainErrors "btcledger/internal/errors"
	"btcledger/internal/logger"
	"btcledger/internal/metrics"
	"btcledger/internal/models"
	"btcledger/internal/repositories"
	"btcledger/internal/services/auth"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type service struct {
	store   repositories.Store
	auth    auth.Service
	config  WalletConfig
	metrics metrics.MetricsCollector
}

// NewService creates a new wallet service
func NewService(store repositories.Store, config WalletConfig, collector metrics.MetricsCollector) Service {
	if store == nil {
		panic("store is required")
	}

	if config.Limit <= 0 {
		config.Limit = DefaultLimit
	}
	if config.StartingBalance.IsZero() {
		config.StartingBalance = DefaultStartingBalance
	}

	// Metrics is optional, create no-op collector if nil
	if collector == nil {
		collector = metrics.NoopMetricsCollector{}
	}

	return &service{
		store:   store,
		auth:    auth.NewService(store.Users()),
		config:  config,
		metrics: collector,
	}
}

func (s *service) WithStore(store repositories.Store) Service {
	return &service{
		store:   store,
		auth:    auth.NewService(store.Users()),
		config:  s.config,
		metrics: s.metrics,
	}
}

func (s *service) Create(ctx context.Context, apiKey string) (*models.Wallet, error) {
	var wallet *models.Wallet
	err := s.store.ExecuteInTransaction(ctx, func(tx repositories.Store) error {
		user, err := auth.NewService(tx.Users()).Resolve(ctx, apiKey)
		if err != nil {
			return err
		}

		if err := tx.Users().LockForUpdate(ctx, user.ID); err != nil {
			return err
		}
		count, err := tx.Wallets().CountByUserID(ctx, user.ID)
		if err != nil {
			return err
		}
		if count >= int64(s.config.Limit) {
			return domainErrors.Wrap(domainErrors.ErrWalletsLimitExceeded, "user<%s> limit<%d>", user.ID, s.config.Limit)
		}

		wallet = &models.Wallet{
			Address: uuid.NewString(),
			UserID:  user.ID,
			Balance: btc.Align(s.config.StartingBalance),
		}
		return tx.Wallets().Create(ctx, wallet)
	})
	if err != nil {
		s.reject(ctx, "create_wallet", err)
		return nil, err
	}

	s.metrics.RecordWalletCreated()
	logger.Info(ctx, "wallet created",
		zap.String("address", wallet.Address),
		zap.String("user_id", wallet.UserID),
		zap.String("balance", wallet.Balance.String()),
	)
	return wallet, nil
}

func (s *service) Read(ctx context.Context, address, apiKey string, checkPermission bool) (*models.Wallet, error) {
	user, err := s.auth.Resolve(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	wallet, err := s.store.Wallets().GetByAddress(ctx, address)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, domainErrors.Wrap(domainErrors.ErrWalletNotFound, "address<%s>", address)
		}
		return nil, err
	}

	if checkPermission && wallet.UserID != user.ID {
		return nil, domainErrors.Wrap(domainErrors.ErrWalletPermissionDenied, "address<%s>", address)
	}
	return wallet, nil
}

func (s *service) ReadAll(ctx context.Context, apiKey string) ([]*models.Wallet, error) {
	user, err := s.auth.Resolve(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return s.store.Wallets().ListByUserID(ctx, user.ID)
}

func (s *service) UpdateBalance(ctx context.Context, address string, balance decimal.Decimal) error {
	err := s.store.Wallets().UpdateBalance(ctx, address, btc.Align(balance))
	if errors.Is(err, repositories.ErrWalletNotFound) {
		return domainErrors.Wrap(domainErrors.ErrWalletNotFound, "address<%s>", address)
	}
	return err
}

func (s *service) reject(ctx context.Context, op string, err error) {
	code := domainErrors.Code(err)
	s.metrics.RecordError(op, code)
	if code == "INTERNAL" {
		logger.Error(ctx, op+" failed", zap.Error(err))
		return
	}
	logger.Warn(ctx, op+" rejected", zap.String("code", code))
}
