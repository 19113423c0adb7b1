package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/mocks"
	"github.com/internsim/practice-api/internal/service"
	"github.com/internsim/practice-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type simulationFixture struct {
	sims     *mocks.MockSimulationStore
	personas *mocks.MockPersonaStore
	users    *mocks.MockUserStore
	tx       *mocks.Transactor
	svc      service.SimulationService
}

func newSimulationFixture(cost int) *simulationFixture {
	f := &simulationFixture{
		sims:     new(mocks.MockSimulationStore),
		personas: new(mocks.MockPersonaStore),
		users:    new(mocks.MockUserStore),
		tx:       &mocks.Transactor{},
	}
	f.svc = service.NewSimulationService(f.sims, f.personas, f.users, f.tx, cost, discardLogger())
	return f
}

func validSimulationInput() service.CreateSimulationInput {
	return service.CreateSimulationInput{
		Simulation: domain.CreateSimulationParams{
			Title:     "Checkout service",
			TechStack: []string{"go", "postgres"},
		},
		Personas: []domain.CreatePersonaParams{
			{Name: "Priya", Role: "Product Manager"},
			{Name: "Tom", Role: "Tech Lead"},
		},
	}
}

func TestSimulationService_CreateSimulation(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("charges cost and stores batch", func(t *testing.T) {
		t.Parallel()
		f := newSimulationFixture(5)
		input := validSimulationInput()

		created := []*domain.Persona{{ID: uuid.New(), Name: "Priya"}, {ID: uuid.New(), Name: "Tom", Position: 1}}
		f.users.On("UpdateCredits", mock.Anything, userID, -5).Return(15, nil)
		f.sims.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Simulation) bool {
			return s.OwnerID == userID && s.Title == "Checkout service" && s.Level == 1
		})).Return(nil)
		f.personas.On("CreateMany", mock.Anything, userID, mock.AnythingOfType("uuid.UUID"), input.Personas).
			Return(created, nil)
		f.users.On("AddXP", mock.Anything, userID, 10).Return(testUser(userID), nil)

		details, err := f.svc.CreateSimulation(context.Background(), userID, input)
		require.NoError(t, err)
		assert.Equal(t, userID, details.Simulation.OwnerID)
		assert.Equal(t, created, details.Personas)
		assert.Equal(t, 1, f.tx.Commits)
		f.users.AssertExpectations(t)
		f.sims.AssertExpectations(t)
		f.personas.AssertExpectations(t)
	})

	t.Run("owner in input is ignored", func(t *testing.T) {
		t.Parallel()
		f := newSimulationFixture(0)
		input := validSimulationInput()
		input.Simulation.OwnerID = uuid.New()

		f.sims.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Simulation) bool {
			return s.OwnerID == userID
		})).Return(nil)
		f.personas.On("CreateMany", mock.Anything, userID, mock.Anything, mock.Anything).Return([]*domain.Persona{}, nil)
		f.users.On("AddXP", mock.Anything, userID, 10).Return(testUser(userID), nil)

		_, err := f.svc.CreateSimulation(context.Background(), userID, input)
		require.NoError(t, err)
		f.users.AssertNotCalled(t, "UpdateCredits", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("insufficient credits rolls back", func(t *testing.T) {
		t.Parallel()
		f := newSimulationFixture(5)
		f.users.On("UpdateCredits", mock.Anything, userID, -5).Return(0, store.ErrInsufficientCredits)

		_, err := f.svc.CreateSimulation(context.Background(), userID, validSimulationInput())
		assert.ErrorIs(t, err, store.ErrInsufficientCredits)
		assert.Equal(t, 1, f.tx.Rollbacks)
		f.sims.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("persona failure rolls back", func(t *testing.T) {
		t.Parallel()
		f := newSimulationFixture(0)
		f.sims.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.personas.On("CreateMany", mock.Anything, userID, mock.Anything, mock.Anything).
			Return(nil, store.ErrDuplicate)

		_, err := f.svc.CreateSimulation(context.Background(), userID, validSimulationInput())
		assert.ErrorIs(t, err, store.ErrDuplicate)
		assert.Equal(t, 1, f.tx.Rollbacks)
		f.users.AssertNotCalled(t, "AddXP", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid input skips the transaction", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name    string
			mutate  func(in *service.CreateSimulationInput)
			wantErr error
		}{
			{"empty title", func(in *service.CreateSimulationInput) { in.Simulation.Title = "" }, domain.ErrEmptySimulationTitle},
			{"bad difficulty", func(in *service.CreateSimulationInput) {
				d := domain.Difficulty("brutal")
				in.Simulation.Difficulty = &d
			}, domain.ErrInvalidDifficulty},
			{"persona without role", func(in *service.CreateSimulationInput) { in.Personas[1].Role = "" }, domain.ErrEmptyPersonaRole},
		}

		for _, tt := range tests {
			f := newSimulationFixture(5)
			input := validSimulationInput()
			tt.mutate(&input)

			_, err := f.svc.CreateSimulation(context.Background(), userID, input)
			assert.ErrorIs(t, err, tt.wantErr, tt.name)
			assert.True(t, domain.IsValidationError(err), tt.name)
			assert.Zero(t, f.tx.Commits+f.tx.Rollbacks, tt.name)
		}
	})
}

func TestSimulationService_GetSimulation(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	simID := uuid.New()

	t.Run("with personas", func(t *testing.T) {
		t.Parallel()
		f := newSimulationFixture(0)
		sim := &domain.Simulation{ID: simID, OwnerID: userID, Title: "Checkout service", Level: 1}
		personas := []*domain.Persona{{ID: uuid.New(), SimulationID: simID, Name: "Priya"}}
		f.sims.On("GetByID", mock.Anything, userID, simID).Return(sim, nil)
		f.personas.On("ListBySimulation", mock.Anything, userID, simID).Return(personas, nil)

		details, err := f.svc.GetSimulation(context.Background(), userID, simID)
		require.NoError(t, err)
		assert.Equal(t, sim, details.Simulation)
		assert.Equal(t, personas, details.Personas)
	})

	t.Run("foreign simulation is not found", func(t *testing.T) {
		t.Parallel()
		f := newSimulationFixture(0)
		f.sims.On("GetByID", mock.Anything, userID, simID).Return(nil, store.ErrSimulationNotFound)

		_, err := f.svc.GetSimulation(context.Background(), userID, simID)
		assert.ErrorIs(t, err, store.ErrSimulationNotFound)
		f.personas.AssertNotCalled(t, "ListBySimulation", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSimulationService_ListAndDelete(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	simID := uuid.New()
	f := newSimulationFixture(0)

	sims := []*domain.Simulation{{ID: simID, OwnerID: userID, Title: "Checkout service", Level: 1}}
	f.sims.On("ListByUser", mock.Anything, userID).Return(sims, nil)
	f.sims.On("Delete", mock.Anything, userID, simID).Return(nil).Once()
	f.sims.On("Delete", mock.Anything, userID, simID).Return(store.ErrSimulationNotFound)

	got, err := f.svc.ListSimulations(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, sims, got)

	require.NoError(t, f.svc.DeleteSimulation(context.Background(), userID, simID))
	assert.ErrorIs(t, f.svc.DeleteSimulation(context.Background(), userID, simID), store.ErrSimulationNotFound)
}
