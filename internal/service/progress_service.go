package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/store"
)

// UpdateProgressInput is a progress change requested by a user. The
// activity timestamp is not part of it: the service always stamps it.
type UpdateProgressInput struct {
	ProjectID          string
	Status             domain.ProgressStatus
	LastReviewAt       domain.Optional[*time.Time]
	LastReviewApproved domain.Optional[*bool]
}

// ProgressService tracks per-project progress of users
type ProgressService interface {
	// ListProgress returns every progress record of the user
	ListProgress(ctx context.Context, userID uuid.UUID) ([]*domain.InternProgress, error)

	// GetProjectProgress returns the record for one project, or nil when
	// the project was never started.
	GetProjectProgress(ctx context.Context, userID uuid.UUID, projectID string) (*domain.InternProgress, error)

	// UpdateProgress creates or updates the record and stamps its last
	// activity with the current time.
	UpdateProgress(ctx context.Context, userID uuid.UUID, input UpdateProgressInput) (*domain.InternProgress, error)
}

// ProgressServiceImpl implements the ProgressService interface
type ProgressServiceImpl struct {
	progressStore store.ProgressStore
	now           func() time.Time
	logger        *slog.Logger
}

// NewProgressService creates a new ProgressService
func NewProgressService(progressStore store.ProgressStore, logger *slog.Logger) ProgressService {
	return newProgressService(progressStore, time.Now, logger)
}

func newProgressService(
	progressStore store.ProgressStore,
	now func() time.Time,
	logger *slog.Logger,
) *ProgressServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressServiceImpl{
		progressStore: progressStore,
		now:           now,
		logger:        logger.With("component", "progress_service"),
	}
}

// ListProgress returns every progress record of the user
func (s *ProgressServiceImpl) ListProgress(ctx context.Context, userID uuid.UUID) ([]*domain.InternProgress, error) {
	records, err := s.progressStore.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list progress", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	return records, nil
}

// GetProjectProgress returns the record for one project
func (s *ProgressServiceImpl) GetProjectProgress(
	ctx context.Context,
	userID uuid.UUID,
	projectID string,
) (*domain.InternProgress, error) {
	p, err := s.progressStore.Get(ctx, userID, projectID)
	if err != nil {
		if errors.Is(err, store.ErrProgressNotFound) {
			return nil, nil
		}
		s.logger.Error("failed to get progress", "error", err, "user_id", userID, "project_id", projectID)
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return p, nil
}

// UpdateProgress creates or updates the record for input.ProjectID
func (s *ProgressServiceImpl) UpdateProgress(
	ctx context.Context,
	userID uuid.UUID,
	input UpdateProgressInput,
) (*domain.InternProgress, error) {
	now := s.now().UTC()

	p, err := s.progressStore.Upsert(ctx, domain.UpsertProgressParams{
		UserID:             userID,
		ProjectID:          input.ProjectID,
		Status:             input.Status,
		LastActivityAt:     domain.Some(&now),
		LastReviewAt:       input.LastReviewAt,
		LastReviewApproved: input.LastReviewApproved,
	})
	if err != nil {
		if !domain.IsValidationError(err) && !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to update progress", "error", err, "user_id", userID, "project_id", input.ProjectID)
		}
		return nil, fmt.Errorf("failed to update progress: %w", err)
	}

	s.logger.Debug("progress updated", "user_id", userID, "project_id", input.ProjectID, "status", p.Status)
	return p, nil
}
