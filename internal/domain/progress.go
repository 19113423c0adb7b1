package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ProgressStatus is the completion state of a project for one user.
type ProgressStatus string

// Possible progress status values, in lifecycle order.
const (
	ProgressNotStarted ProgressStatus = "not_started"
	ProgressInProgress ProgressStatus = "in_progress"
	ProgressCompleted  ProgressStatus = "completed"
)

// Common validation errors for InternProgress
var (
	ErrEmptyProgressUserID    = errors.New("progress user ID cannot be empty")
	ErrEmptyProgressProjectID = errors.New("progress project ID cannot be empty")
	ErrInvalidProgressStatus  = errors.New("invalid progress status")
	ErrInvalidTransition      = errors.New("progress status transition not allowed")
)

// IsValid reports whether s is a known status.
func (s ProgressStatus) IsValid() bool {
	return s.Rank() >= 0
}

// Rank orders statuses along the lifecycle. Unknown statuses rank -1.
func (s ProgressStatus) Rank() int {
	switch s {
	case ProgressNotStarted:
		return 0
	case ProgressInProgress:
		return 1
	case ProgressCompleted:
		return 2
	default:
		return -1
	}
}

// CanTransition reports whether a record in status from may move to status to.
// Progress never moves backwards; repeating the current status is allowed so
// that upserts stay idempotent.
func CanTransition(from, to ProgressStatus) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	return to.Rank() >= from.Rank()
}

// InternProgress tracks one user's work on one project.
// A missing record means the project was never started.
type InternProgress struct {
	ID                 uuid.UUID      `json:"id"`
	UserID             uuid.UUID      `json:"user_id"`
	ProjectID          string         `json:"project_id"`
	Status             ProgressStatus `json:"status"`
	LastActivityAt     *time.Time     `json:"last_activity_at"`
	LastReviewAt       *time.Time     `json:"last_review_at"`
	LastReviewApproved *bool          `json:"last_review_approved"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// UpsertProgressParams creates or updates the record keyed by
// (UserID, ProjectID). Unset optional fields keep their stored value on
// update and are NULL on insert.
type UpsertProgressParams struct {
	UserID             uuid.UUID
	ProjectID          string
	Status             ProgressStatus
	LastActivityAt     Optional[*time.Time]
	LastReviewAt       Optional[*time.Time]
	LastReviewApproved Optional[*bool]
}

// Validate checks the key and status of the upsert.
func (p UpsertProgressParams) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyProgressUserID
	}
	if p.ProjectID == "" {
		return ErrEmptyProgressProjectID
	}
	if !p.Status.IsValid() {
		return ErrInvalidProgressStatus
	}
	return nil
}
