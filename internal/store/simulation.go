package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
)

// SimulationStore defines the interface for simulation data persistence.
// Every read and delete takes the owner ID; a simulation owned by another
// user is reported exactly like a missing one.
type SimulationStore interface {
	// Create saves a new simulation.
	// Returns validation errors from the domain Simulation if data is invalid.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, sim *domain.Simulation) error

	// GetByID retrieves the simulation with the given ID owned by ownerID.
	// Returns ErrSimulationNotFound if no such simulation exists for the owner.
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Simulation, error)

	// ListByUser returns the simulations owned by ownerID, newest first.
	// The order is stable across calls with no intervening writes.
	// Returns an empty slice if the user has none.
	ListByUser(ctx context.Context, ownerID uuid.UUID) ([]*domain.Simulation, error)

	// Delete removes the simulation and all of its personas in one
	// transaction.
	// Returns ErrSimulationNotFound if no such simulation exists for the owner.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// WithTx returns a new SimulationStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) SimulationStore
}
