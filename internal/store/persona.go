package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
)

// PersonaStore defines the interface for persona data persistence.
// Personas are reached through their simulation, so every operation is
// scoped by the owner of that simulation.
type PersonaStore interface {
	// ListBySimulation returns the personas of a simulation in creation
	// order. Returns an empty slice if the simulation has none or is not
	// owned by ownerID.
	ListBySimulation(ctx context.Context, ownerID, simulationID uuid.UUID) ([]*domain.Persona, error)

	// CreateMany creates the whole batch or nothing and returns the personas
	// with their assigned IDs and creation time.
	// Returns ErrSimulationNotFound if the simulation is not owned by ownerID.
	// Returns ErrDuplicate if two personas of the simulation share a name.
	CreateMany(
		ctx context.Context,
		ownerID, simulationID uuid.UUID,
		params []domain.CreatePersonaParams,
	) ([]*domain.Persona, error)

	// WithTx returns a new PersonaStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) PersonaStore
}
