package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockUserStore is a mock of store.UserStore interface for use with testify/mock
type MockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create is a mock implementation of store.UserStore.Create
func (m *MockUserStore) Create(ctx context.Context, params domain.CreateUserParams) (*domain.User, error) {
	args := m.Called(ctx, params)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByID is a mock implementation of store.UserStore.GetByID
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetForUpdate is a mock implementation of store.UserStore.GetForUpdate
func (m *MockUserStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByEmail is a mock implementation of store.UserStore.GetByEmail
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.UserStore.Update
func (m *MockUserStore) Update(
	ctx context.Context,
	id uuid.UUID,
	params domain.UpdateUserParams,
) (*domain.User, error) {
	args := m.Called(ctx, id, params)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdateCredits is a mock implementation of store.UserStore.UpdateCredits
func (m *MockUserStore) UpdateCredits(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	args := m.Called(ctx, id, delta)
	return args.Int(0), args.Error(1)
}

// AddXP is a mock implementation of store.UserStore.AddXP
func (m *MockUserStore) AddXP(ctx context.Context, id uuid.UUID, delta int) (*domain.User, error) {
	args := m.Called(ctx, id, delta)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx returns the mock itself so expectations set on it also cover
// calls made inside a transaction.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
