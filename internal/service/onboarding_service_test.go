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

func TestOnboardingService_CompleteOnboarding(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	input := service.OnboardingInput{
		Field:           domain.FieldBackend,
		ExperienceLevel: domain.ExperienceJunior,
		Interests:       []string{"apis"},
	}
	expectedPatch := domain.UpdateUserParams{
		Field:               domain.Some(domain.FieldBackend),
		ExperienceLevel:     domain.Some(domain.ExperienceJunior),
		Interests:           domain.Some([]string{"apis"}),
		OnboardingCompleted: domain.Some(true),
	}

	t.Run("first completion awards xp", func(t *testing.T) {
		t.Parallel()
		users := new(mocks.MockUserStore)
		tx := &mocks.Transactor{}

		before := testUser(userID)
		onboarded := testUser(userID)
		onboarded.OnboardingCompleted = true
		rewarded := testUser(userID)
		rewarded.OnboardingCompleted = true
		rewarded.XP = 25

		users.On("GetForUpdate", mock.Anything, userID).Return(before, nil)
		users.On("Update", mock.Anything, userID, expectedPatch).Return(onboarded, nil)
		users.On("AddXP", mock.Anything, userID, 25).Return(rewarded, nil)

		user, err := service.NewOnboardingService(users, tx, discardLogger()).
			CompleteOnboarding(context.Background(), userID, input)
		require.NoError(t, err)
		assert.Equal(t, 25, user.XP)
		assert.Equal(t, 1, tx.Commits)
		users.AssertExpectations(t)
	})

	t.Run("repeat completion does not award again", func(t *testing.T) {
		t.Parallel()
		users := new(mocks.MockUserStore)
		tx := &mocks.Transactor{}

		onboarded := testUser(userID)
		onboarded.OnboardingCompleted = true
		users.On("GetForUpdate", mock.Anything, userID).Return(onboarded, nil)
		users.On("Update", mock.Anything, userID, expectedPatch).Return(onboarded, nil)

		_, err := service.NewOnboardingService(users, tx, discardLogger()).
			CompleteOnboarding(context.Background(), userID, input)
		require.NoError(t, err)
		users.AssertNotCalled(t, "AddXP", mock.Anything, mock.Anything, mock.Anything)
		users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("invalid enums are rejected before any write", func(t *testing.T) {
		t.Parallel()

		invalid := []struct {
			name    string
			input   service.OnboardingInput
			wantErr error
		}{
			{"missing field", service.OnboardingInput{ExperienceLevel: domain.ExperienceStudent}, domain.ErrInvalidField},
			{"unknown field", service.OnboardingInput{Field: "devops", ExperienceLevel: domain.ExperienceStudent}, domain.ErrInvalidField},
			{"missing level", service.OnboardingInput{Field: domain.FieldData}, domain.ErrInvalidExperience},
			{"unknown level", service.OnboardingInput{Field: domain.FieldData, ExperienceLevel: "senior"}, domain.ErrInvalidExperience},
		}

		for _, tt := range invalid {
			users := new(mocks.MockUserStore)
			tx := &mocks.Transactor{}

			_, err := service.NewOnboardingService(users, tx, discardLogger()).
				CompleteOnboarding(context.Background(), userID, tt.input)
			assert.ErrorIs(t, err, tt.wantErr, tt.name)
			assert.ErrorIs(t, err, domain.ErrValidation, tt.name)
			assert.Zero(t, tx.Commits+tx.Rollbacks, tt.name)
		}
	})

	t.Run("unknown user rolls back", func(t *testing.T) {
		t.Parallel()
		users := new(mocks.MockUserStore)
		tx := &mocks.Transactor{}
		users.On("GetForUpdate", mock.Anything, userID).Return(nil, store.ErrUserNotFound)

		_, err := service.NewOnboardingService(users, tx, discardLogger()).
			CompleteOnboarding(context.Background(), userID, input)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.Equal(t, 1, tx.Rollbacks)
	})
}
