package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/catalog"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/mocks"
	"github.com/internsim/practice-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func TestProjectService_ListProjects(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	base := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	older := base.Add(-48 * time.Hour)
	newest := base.Add(2 * time.Hour)

	progress := []*domain.InternProgress{
		{ProjectID: "rest-api", Status: domain.ProgressCompleted, LastActivityAt: &older, CreatedAt: older},
		{ProjectID: "landing-page", Status: domain.ProgressNotStarted, CreatedAt: base},
		{ProjectID: "retired-project", Status: domain.ProgressInProgress, LastActivityAt: &newest},
	}
	simID := uuid.New()
	hard := domain.DifficultyHard
	sims := []*domain.Simulation{
		{
			ID:         simID,
			OwnerID:    userID,
			Title:      "Realtime chat",
			Domain:     strPtr("mobile"),
			Field:      strPtr("backend"),
			Difficulty: &hard,
			Level:      3,
			TechStack:  []string{"swift"},
			CreatedAt:  base,
			UpdatedAt:  base.Add(time.Hour),
		},
		{
			ID:        uuid.New(),
			OwnerID:   userID,
			Title:     "Untitled idea",
			Domain:    strPtr("quantum"),
			Level:     1,
			TechStack: []string{},
			CreatedAt: older.Add(-time.Hour),
		},
	}

	progressStore := new(mocks.MockProgressStore)
	progressStore.On("ListByUser", mock.Anything, userID).Return(progress, nil)
	simStore := new(mocks.MockSimulationStore)
	simStore.On("ListByUser", mock.Anything, userID).Return(sims, nil)

	svc := service.NewProjectService(progressStore, simStore, defaultCatalog(t), discardLogger())
	projects, err := svc.ListProjects(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, projects, 4)

	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"sim-" + simID.String(), "landing-page", "rest-api", "sim-" + sims[1].ID.String()}, ids)

	chat := projects[0]
	assert.Equal(t, service.ProjectCustom, chat.Type)
	assert.Equal(t, domain.FieldMobile, chat.Field)
	assert.Equal(t, "Mobile", chat.FieldLabel)
	assert.Equal(t, domain.DifficultyHard, chat.Difficulty)
	assert.Equal(t, domain.ProgressInProgress, chat.Status)
	assert.Equal(t, []string{"swift"}, chat.Tools)
	assert.Equal(t, "Custom AI-generated simulation", chat.Description)
	require.NotNil(t, chat.SimulationID)
	assert.Equal(t, simID, *chat.SimulationID)

	landing := projects[1]
	assert.Equal(t, service.ProjectPredefined, landing.Type)
	assert.Equal(t, domain.ProgressInProgress, landing.Status, "any non-completed record counts as in progress")
	assert.Equal(t, base, landing.LastActivity)
	assert.Nil(t, landing.SimulationID)

	restAPI := projects[2]
	assert.Equal(t, domain.ProgressCompleted, restAPI.Status)
	assert.Equal(t, "Backend", restAPI.FieldLabel)
	assert.Equal(t, "Detail-Obsessed PM", restAPI.ClientPersona)
	assert.Equal(t, 4, restAPI.Level)

	fallback := projects[3]
	assert.Equal(t, domain.FieldFullstack, fallback.Field)
	assert.Equal(t, domain.DifficultyMedium, fallback.Difficulty)
	assert.Equal(t, "Variable", fallback.Duration)
	assert.Equal(t, "AI Client", fallback.ClientPersona)
	assert.Equal(t, "Neutral", fallback.ClientMood)
	assert.Equal(t, sims[1].CreatedAt, fallback.LastActivity)
}

func TestProjectService_ListProjectsEmpty(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	progressStore := new(mocks.MockProgressStore)
	progressStore.On("ListByUser", mock.Anything, userID).Return([]*domain.InternProgress{}, nil)
	simStore := new(mocks.MockSimulationStore)
	simStore.On("ListByUser", mock.Anything, userID).Return([]*domain.Simulation{}, nil)

	projects, err := service.NewProjectService(progressStore, simStore, defaultCatalog(t), discardLogger()).
		ListProjects(context.Background(), userID)
	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}

func TestProjectService_ListProjectsStoreFailure(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	boom := errors.New("connection refused")
	progressStore := new(mocks.MockProgressStore)
	progressStore.On("ListByUser", mock.Anything, userID).Return(nil, boom)
	simStore := new(mocks.MockSimulationStore)
	simStore.On("ListByUser", mock.Anything, userID).Return([]*domain.Simulation{}, nil)

	_, err := service.NewProjectService(progressStore, simStore, defaultCatalog(t), discardLogger()).
		ListProjects(context.Background(), userID)
	assert.ErrorIs(t, err, boom)
}
