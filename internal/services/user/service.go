package user

import (
	"context"
	"errors"
	"fmt"

	domainErrors "btcledger/internal/errors"
	"btcledger/internal/logger"
	"btcledger/internal/metrics"
	"btcledger/internal/models"
	"btcledger/internal/repositories"
	"btcledger/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	// Register creates a user and returns it with its plaintext API key.
	// The key is not recoverable afterwards.
	Register(ctx context.Context, email string) (*models.User, error)
}

type service struct {
	repo    repositories.UserRepository
	metrics metrics.MetricsCollector
}

func NewService(repo repositories.UserRepository, collector metrics.MetricsCollector) Service {
	if collector == nil {
		collector = metrics.NoopMetricsCollector{}
	}
	return &service{
		repo:    repo,
		metrics: collector,
	}
}

func (s *service) Register(ctx context.Context, email string) (*models.User, error) {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, s.reject(ctx, domainErrors.Wrap(domainErrors.ErrEmailAlreadyExists, "email<%s>", email))
	}

	apiKey, err := utils.GenerateAPIKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate api key: %w", err)
	}

	user := &models.User{
		ID:         uuid.NewString(),
		Email:      email,
		APIKeyHash: utils.HashAPIKey(apiKey),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return nil, s.reject(ctx, domainErrors.Wrap(domainErrors.ErrEmailAlreadyExists, "email<%s>", email))
		}
		return nil, err
	}
	user.APIKey = apiKey

	s.metrics.RecordUserRegistered()
	logger.Info(ctx, "user registered", zap.String("user_id", user.ID))
	return user, nil
}

func (s *service) reject(ctx context.Context, err error) error {
	s.metrics.RecordError("register", domainErrors.Code(err))
	logger.Warn(ctx, "registration rejected", zap.String("code", domainErrors.Code(err)))
	return err
}
