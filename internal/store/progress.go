package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
)

// ProgressStore defines the interface for intern progress persistence.
type ProgressStore interface {
	// ListByUser returns every progress record of the user.
	// Returns an empty slice if the user has started nothing.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.InternProgress, error)

	// Get returns the record for (userID, projectID).
	// Returns ErrProgressNotFound if the project was never started; that is
	// the not-started state, not a failure.
	Get(ctx context.Context, userID uuid.UUID, projectID string) (*domain.InternProgress, error)

	// Upsert creates the record for (params.UserID, params.ProjectID) or
	// updates it in a single statement. Unset optional fields keep their
	// stored value.
	// Returns ErrInvalidTransition, leaving the record untouched, if the
	// stored status may not move to params.Status.
	Upsert(ctx context.Context, params domain.UpsertProgressParams) (*domain.InternProgress, error)

	// WithTx returns a new ProgressStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ProgressStore
}
