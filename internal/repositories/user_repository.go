package repositories

import (
	"context"
	"errors"

	"btcledger/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already taken")
)

// UserRepository defines the persistence operations for users
type UserRepository interface {
	// Create stores a new user; it returns ErrEmailTaken when the email is in use
	Create(ctx context.Context, user *models.User) error

	// GetByEmail retrieves a user by email address
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByAPIKeyHash retrieves the user owning the API key with this digest
	GetByAPIKeyHash(ctx context.Context, hash string) (*models.User, error)

	// LockForUpdate holds the user's row until the surrounding transaction
	// ends. A missing user is not an error.
	LockForUpdate(ctx context.Context, id string) error
}
