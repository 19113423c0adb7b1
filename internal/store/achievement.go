package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
)

// AchievementStore defines the interface for unlocked achievement persistence.
// Achievement definitions live in the catalog; the store only records which
// ones a user has unlocked.
type AchievementStore interface {
	// ListByUser returns the achievements unlocked by the user, oldest first.
	// Returns an empty slice if none are unlocked.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserAchievement, error)

	// Unlock records achievementID for the user. It reports false without
	// error when the achievement was already unlocked.
	// Returns ErrUserNotFound if the user does not exist.
	Unlock(ctx context.Context, userID uuid.UUID, achievementID string) (bool, error)

	// WithTx returns a new AchievementStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) AchievementStore
}
