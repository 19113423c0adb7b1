package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/platform/logger"
	"github.com/internsim/practice-api/internal/store"
)

// PostgresAchievementStore implements the store.AchievementStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAchievementStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAchievementStore creates a new PostgreSQL implementation of the AchievementStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresAchievementStore(db store.DBTX, logger *slog.Logger) *PostgresAchievementStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAchievementStore{
		db:     db,
		logger: logger.With(slog.String("component", "achievement_store")),
	}
}

// Ensure PostgresAchievementStore implements store.AchievementStore interface
var _ store.AchievementStore = (*PostgresAchievementStore)(nil)

// WithTx implements store.AchievementStore.WithTx
func (s *PostgresAchievementStore) WithTx(tx *sql.Tx) store.AchievementStore {
	return &PostgresAchievementStore{
		db:     tx,
		logger: s.logger,
	}
}

// ListByUser implements store.AchievementStore.ListByUser
func (s *PostgresAchievementStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.UserAchievement, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT user_id, achievement_id, unlocked_at
		FROM user_achievements
		WHERE user_id = $1
		ORDER BY unlocked_at, achievement_id`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list achievements",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	unlocked := make([]*domain.UserAchievement, 0)
	for rows.Next() {
		var ua domain.UserAchievement
		if err := rows.Scan(&ua.UserID, &ua.AchievementID, &ua.UnlockedAt); err != nil {
			log.Error("failed to scan achievement row", slog.String("error", err.Error()))
			return nil, err
		}
		unlocked = append(unlocked, &ua)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating achievement rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return unlocked, nil
}

// Unlock implements store.AchievementStore.Unlock
// The insert is a no-op on the (user_id, achievement_id) key, so repeated
// and concurrent unlocks record the achievement once.
func (s *PostgresAchievementStore) Unlock(
	ctx context.Context,
	userID uuid.UUID,
	achievementID string,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO user_achievements (user_id, achievement_id, unlocked_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, achievement_id) DO NOTHING`

	result, err := s.db.ExecContext(ctx, query, userID, achievementID, time.Now().UTC())
	if err != nil {
		if IsForeignKeyViolation(err) {
			return false, store.ErrUserNotFound
		}
		log.Error("failed to unlock achievement",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("achievement_id", achievementID))
		return false, MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, MapError(err)
	}
	if rows == 0 {
		return false, nil
	}

	log.Info("achievement unlocked",
		slog.String("user_id", userID.String()),
		slog.String("achievement_id", achievementID))
	return true, nil
}
