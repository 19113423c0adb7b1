package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/platform/logger"
	"github.com/internsim/practice-api/internal/store"
)

const progressColumns = `id, user_id, project_id, status, last_activity_at, last_review_at,
	last_review_approved, created_at, updated_at`

// PostgresProgressStore implements the store.ProgressStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of the ProgressStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// WithTx implements store.ProgressStore.WithTx
func (s *PostgresProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return &PostgresProgressStore{
		db:     tx,
		logger: s.logger,
	}
}

func scanProgress(row rowScanner) (*domain.InternProgress, error) {
	var (
		p                        domain.InternProgress
		status                   string
		lastActivity, lastReview sql.NullTime
		lastReviewApproved       sql.NullBool
	)

	err := row.Scan(
		&p.ID, &p.UserID, &p.ProjectID, &status, &lastActivity, &lastReview,
		&lastReviewApproved, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Status = domain.ProgressStatus(status)
	p.LastActivityAt = timePtr(lastActivity)
	p.LastReviewAt = timePtr(lastReview)
	p.LastReviewApproved = boolPtr(lastReviewApproved)
	return &p, nil
}

// ListByUser implements store.ProgressStore.ListByUser
// Records are ordered by most recent activity first.
func (s *PostgresProgressStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.InternProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + progressColumns + `
		FROM intern_progress
		WHERE user_id = $1
		ORDER BY last_activity_at DESC NULLS LAST, project_id`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]*domain.InternProgress, 0)
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			log.Error("failed to scan progress row", slog.String("error", err.Error()))
			return nil, err
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating progress rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return records, nil
}

// Get implements store.ProgressStore.Get
// Returns store.ErrProgressNotFound if the project was never started.
func (s *PostgresProgressStore) Get(
	ctx context.Context,
	userID uuid.UUID,
	projectID string,
) (*domain.InternProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + progressColumns + `
		FROM intern_progress
		WHERE user_id = $1 AND project_id = $2`

	p, err := scanProgress(s.db.QueryRowContext(ctx, query, userID, projectID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("progress not found",
				slog.String("user_id", userID.String()),
				slog.String("project_id", projectID))
			return nil, store.ErrProgressNotFound
		}
		log.Error("failed to get progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("project_id", projectID))
		return nil, MapError(err)
	}

	return p, nil
}

// Upsert implements store.ProgressStore.Upsert
// The whole create-or-update runs as one INSERT ... ON CONFLICT statement
// keyed by (user_id, project_id). The update branch is skipped when the
// stored status ranks above the requested one, which surfaces as
// store.ErrInvalidTransition.
func (s *PostgresProgressStore) Upsert(
	ctx context.Context,
	params domain.UpsertProgressParams,
) (*domain.InternProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := params.Validate(); err != nil {
		log.Warn("progress validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("project_id", params.ProjectID))
		return nil, err
	}

	lastActivity, setActivity := params.LastActivityAt.Get()
	lastReview, setReview := params.LastReviewAt.Get()
	approved, setApproved := params.LastReviewApproved.Get()
	now := time.Now().UTC()

	query := `
		INSERT INTO intern_progress (` + progressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (user_id, project_id) DO UPDATE SET
			status = EXCLUDED.status,
			last_activity_at = CASE WHEN $9::boolean
				THEN EXCLUDED.last_activity_at ELSE intern_progress.last_activity_at END,
			last_review_at = CASE WHEN $10::boolean
				THEN EXCLUDED.last_review_at ELSE intern_progress.last_review_at END,
			last_review_approved = CASE WHEN $11::boolean
				THEN EXCLUDED.last_review_approved ELSE intern_progress.last_review_approved END,
			updated_at = EXCLUDED.updated_at
		WHERE progress_status_rank(intern_progress.status) <= progress_status_rank(EXCLUDED.status)
		RETURNING ` + progressColumns

	p, err := scanProgress(s.db.QueryRowContext(
		ctx,
		query,
		uuid.New(),
		params.UserID,
		params.ProjectID,
		string(params.Status),
		lastActivity,
		lastReview,
		approved,
		now,
		setActivity,
		setReview,
		setApproved,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("progress transition rejected",
				slog.String("user_id", params.UserID.String()),
				slog.String("project_id", params.ProjectID),
				slog.String("status", string(params.Status)))
			return nil, store.ErrInvalidTransition
		}
		if IsForeignKeyViolation(err) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to upsert progress",
			slog.String("error", err.Error()),
			slog.String("user_id", params.UserID.String()),
			slog.String("project_id", params.ProjectID))
		return nil, MapError(err)
	}

	log.Info("progress upserted",
		slog.String("user_id", params.UserID.String()),
		slog.String("project_id", params.ProjectID),
		slog.String("status", string(p.Status)))
	return p, nil
}
