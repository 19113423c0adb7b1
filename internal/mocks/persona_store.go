package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockPersonaStore is a mock of store.PersonaStore interface for use with testify/mock
type MockPersonaStore struct {
	mock.Mock
}

var _ store.PersonaStore = (*MockPersonaStore)(nil)

// ListBySimulation is a mock implementation of store.PersonaStore.ListBySimulation
func (m *MockPersonaStore) ListBySimulation(
	ctx context.Context,
	ownerID, simulationID uuid.UUID,
) ([]*domain.Persona, error) {
	args := m.Called(ctx, ownerID, simulationID)
	if personas, ok := args.Get(0).([]*domain.Persona); ok {
		return personas, args.Error(1)
	}
	return nil, args.Error(1)
}

// CreateMany is a mock implementation of store.PersonaStore.CreateMany
func (m *MockPersonaStore) CreateMany(
	ctx context.Context,
	ownerID, simulationID uuid.UUID,
	params []domain.CreatePersonaParams,
) ([]*domain.Persona, error) {
	args := m.Called(ctx, ownerID, simulationID, params)
	if personas, ok := args.Get(0).([]*domain.Persona); ok {
		return personas, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx returns the mock itself.
func (m *MockPersonaStore) WithTx(tx *sql.Tx) store.PersonaStore {
	return m
}
