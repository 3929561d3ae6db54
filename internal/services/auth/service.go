package auth

import (
	"context"
	"errors"

	domainErrors "btcledger/internal/errors"
	"btcledger/internal/models"
	"btcledger/internal/repositories"
	"btcledger/internal/utils"
)

// Service resolves an API key to the user it identifies.
type Service interface {
	Resolve(ctx context.Context, apiKey string) (*models.User, error)
}

type service struct {
	userRepo repositories.UserRepository
}

func NewService(userRepo repositories.UserRepository) Service {
	return &service{
		userRepo: userRepo,
	}
}

// Resolve fails with ErrInvalidAPIKey when no user holds apiKey.
func (s *service) Resolve(ctx context.Context, apiKey string) (*models.User, error) {
	if apiKey == "" {
		return nil, domainErrors.Wrap(domainErrors.ErrInvalidAPIKey, "api key is empty")
	}

	user, err := s.userRepo.GetByAPIKeyHash(ctx, utils.HashAPIKey(apiKey))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, domainErrors.Wrap(domainErrors.ErrInvalidAPIKey, "api_key<%s>", apiKey)
		}
		return nil, err
	}
	return user, nil
}
