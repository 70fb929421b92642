package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/identity"
	"github.com/orderflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockAllowedEmailRepository is a mock implementation of identity.AllowedEmailRepository
type MockAllowedEmailRepository struct {
	mock.Mock
}

func (m *MockAllowedEmailRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.AllowedEmail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.AllowedEmail), args.Error(1)
}

func (m *MockAllowedEmailRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.AllowedEmail, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.AllowedEmail), args.Error(1)
}

func (m *MockAllowedEmailRepository) Save(ctx context.Context, account *identity.AllowedEmail) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAllowedEmailRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAllowedEmailRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAllowedEmailRepository) FindByEmail(ctx context.Context, email string) (*identity.AllowedEmail, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.AllowedEmail), args.Error(1)
}

func (m *MockAllowedEmailRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}
