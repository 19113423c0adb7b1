package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockProgressStore is a mock of store.ProgressStore interface for use with testify/mock
type MockProgressStore struct {
	mock.Mock
}

var _ store.ProgressStore = (*MockProgressStore)(nil)

// ListByUser is a mock implementation of store.ProgressStore.ListByUser
func (m *MockProgressStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.InternProgress, error) {
	args := m.Called(ctx, userID)
	if records, ok := args.Get(0).([]*domain.InternProgress); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

// Get is a mock implementation of store.ProgressStore.Get
func (m *MockProgressStore) Get(
	ctx context.Context,
	userID uuid.UUID,
	projectID string,
) (*domain.InternProgress, error) {
	args := m.Called(ctx, userID, projectID)
	if p, ok := args.Get(0).(*domain.InternProgress); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// Upsert is a mock implementation of store.ProgressStore.Upsert
func (m *MockProgressStore) Upsert(
	ctx context.Context,
	params domain.UpsertProgressParams,
) (*domain.InternProgress, error) {
	args := m.Called(ctx, params)
	if p, ok := args.Get(0).(*domain.InternProgress); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx returns the mock itself.
func (m *MockProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return m
}
