package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to ProgressStatus
		want     bool
	}{
		{ProgressNotStarted, ProgressNotStarted, true},
		{ProgressNotStarted, ProgressInProgress, true},
		{ProgressNotStarted, ProgressCompleted, true},
		{ProgressInProgress, ProgressInProgress, true},
		{ProgressInProgress, ProgressCompleted, true},
		{ProgressCompleted, ProgressCompleted, true},
		{ProgressInProgress, ProgressNotStarted, false},
		{ProgressCompleted, ProgressInProgress, false},
		{ProgressCompleted, ProgressNotStarted, false},
		{ProgressStatus("paused"), ProgressCompleted, false},
		{ProgressInProgress, ProgressStatus("archived"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestUpsertProgressParams_Validate(t *testing.T) {
	t.Parallel()

	valid := UpsertProgressParams{
		UserID:    uuid.New(),
		ProjectID: "frontend-landing-page",
		Status:    ProgressInProgress,
	}
	assert.NoError(t, valid.Validate())

	p := valid
	p.UserID = uuid.Nil
	assert.Equal(t, ErrEmptyProgressUserID, p.Validate())

	p = valid
	p.ProjectID = ""
	assert.Equal(t, ErrEmptyProgressProjectID, p.Validate())

	p = valid
	p.Status = "done"
	assert.Equal(t, ErrInvalidProgressStatus, p.Validate())
}
