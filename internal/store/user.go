package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user built from params and returns the fully
	// populated entity. Credits start at params.InitialCredits, xp at 0 and
	// the level at domain.DefaultLevel.
	// Returns ErrEmailExists if the email is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, params domain.CreateUserParams) (*domain.User, error)

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetForUpdate retrieves a user and locks the row with SELECT FOR UPDATE
	// until the surrounding transaction ends. Use it through WithTx when a
	// decision depends on the current row state.
	// Returns ErrUserNotFound if the user does not exist.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update applies the set fields of params and returns the updated user.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns a domain.ValidationError wrapping domain.ErrOnboardingIncomplete
	// if the resulting row would be onboarded without field and experience level.
	Update(ctx context.Context, id uuid.UUID, params domain.UpdateUserParams) (*domain.User, error)

	// UpdateCredits atomically adds delta (positive or negative) to the
	// balance and returns the new balance.
	// Returns ErrInsufficientCredits, leaving the balance unchanged, if the
	// result would be negative.
	// Returns ErrUserNotFound if the user does not exist.
	UpdateCredits(ctx context.Context, id uuid.UUID, delta int) (int, error)

	// AddXP atomically adds delta to the user's xp, recomputes the current
	// level from domain.LevelThresholds and returns the updated user.
	// Returns ErrUserNotFound if the user does not exist.
	AddXP(ctx context.Context, id uuid.UUID, delta int) (*domain.User, error)

	// WithTx returns a new UserStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) UserStore
}
