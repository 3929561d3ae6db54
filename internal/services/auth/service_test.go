package auth

import (
	"context"
	"errors"
	"testing"

	domainErrors "btcledger/internal/errors"
	"btcledger/internal/models"
	"btcledger/internal/repositories"
	"btcledger/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByAPIKeyHash(ctx context.Context, hash string) (*models.User, error) {
	args := m.Called(ctx, hash)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) LockForUpdate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestAuthService_Resolve(t *testing.T) {
	ctx := context.Background()
	alice := &models.User{ID: "u1", Email: "a@x.com"}

	tests := []struct {
		name      string
		apiKey    string
		setupMock func(*MockUserRepository)
		wantUser  *models.User
		wantKind  error
	}{
		{
			name:   "known key",
			apiKey: "key-a",
			setupMock: func(r *MockUserRepository) {
				r.On("GetByAPIKeyHash", ctx, utils.HashAPIKey("key-a")).Return(alice, nil)
			},
			wantUser: alice,
		},
		{
			name:   "unknown key",
			apiKey: "nope",
			setupMock: func(r *MockUserRepository) {
				r.On("GetByAPIKeyHash", ctx, utils.HashAPIKey("nope")).Return(nil, repositories.ErrUserNotFound)
			},
			wantKind: domainErrors.ErrInvalidAPIKey,
		},
		{
			name:     "empty key never hits the store",
			apiKey:   "",
			wantKind: domainErrors.ErrInvalidAPIKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			user, err := NewService(repo).Resolve(ctx, tt.apiKey)
			if tt.wantKind != nil {
				assert.ErrorIs(t, err, tt.wantKind)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantUser, user)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Resolve_StorageFault(t *testing.T) {
	ctx := context.Background()
	fault := errors.New("connection reset")
	repo := new(MockUserRepository)
	repo.On("GetByAPIKeyHash", ctx, mock.Anything).Return(nil, fault)

	_, err := NewService(repo).Resolve(ctx, "key")
	assert.ErrorIs(t, err, fault)
	assert.NotErrorIs(t, err, domainErrors.ErrInvalidAPIKey)
}
