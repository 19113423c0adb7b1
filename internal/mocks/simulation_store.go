package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockSimulationStore is a mock of store.SimulationStore interface for use with testify/mock
type MockSimulationStore struct {
	mock.Mock
}

var _ store.SimulationStore = (*MockSimulationStore)(nil)

// Create is a mock implementation of store.SimulationStore.Create
func (m *MockSimulationStore) Create(ctx context.Context, sim *domain.Simulation) error {
	args := m.Called(ctx, sim)
	return args.Error(0)
}

// GetByID is a mock implementation of store.SimulationStore.GetByID
func (m *MockSimulationStore) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Simulation, error) {
	args := m.Called(ctx, ownerID, id)
	if sim, ok := args.Get(0).(*domain.Simulation); ok {
		return sim, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListByUser is a mock implementation of store.SimulationStore.ListByUser
func (m *MockSimulationStore) ListByUser(ctx context.Context, ownerID uuid.UUID) ([]*domain.Simulation, error) {
	args := m.Called(ctx, ownerID)
	if sims, ok := args.Get(0).([]*domain.Simulation); ok {
		return sims, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.SimulationStore.Delete
func (m *MockSimulationStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

// WithTx returns the mock itself.
func (m *MockSimulationStore) WithTx(tx *sql.Tx) store.SimulationStore {
	return m
}
