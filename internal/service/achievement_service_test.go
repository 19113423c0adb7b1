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
	"github.com/internsim/practice-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const achievementCatalogYAML = `
projects:
  - {id: rest-api, title: REST API, field: backend, difficulty: medium, level: 1}
achievements:
  - {id: onboarded, title: Onboarded, metric: onboarding_completed, threshold: 1, xp_reward: 10}
  - {id: first-project, title: First Project, metric: projects_completed, threshold: 1, xp_reward: 25, credit_reward: 5}
  - {id: level-two, title: Level Two, metric: level, threshold: 2, credit_reward: 3}
  - {id: streak-3, title: Streak, metric: streak_days, threshold: 3, xp_reward: 10}
`

func achievementCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Parse([]byte(achievementCatalogYAML))
	require.NoError(t, err)
	return c
}

type achievementDeps struct {
	users        *mocks.MockUserStore
	simulations  *mocks.MockSimulationStore
	progress     *mocks.MockProgressStore
	achievements *mocks.MockAchievementStore
	tx           *mocks.Transactor
	svc          service.AchievementService
}

func newAchievementDeps(t *testing.T) *achievementDeps {
	t.Helper()
	d := &achievementDeps{
		users:        new(mocks.MockUserStore),
		simulations:  new(mocks.MockSimulationStore),
		progress:     new(mocks.MockProgressStore),
		achievements: new(mocks.MockAchievementStore),
		tx:           &mocks.Transactor{},
	}
	d.svc = service.NewAchievementService(
		d.users, d.simulations, d.progress, d.achievements, d.tx, achievementCatalog(t), discardLogger())
	return d
}

func TestAchievementService_ListAchievements(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("marks unlocked achievements", func(t *testing.T) {
		t.Parallel()
		d := newAchievementDeps(t)
		at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		d.achievements.On("ListByUser", mock.Anything, userID).Return([]*domain.UserAchievement{
			{UserID: userID, AchievementID: "first-project", UnlockedAt: at},
			{UserID: userID, AchievementID: "retired", UnlockedAt: at},
		}, nil)

		views, err := d.svc.ListAchievements(context.Background(), userID)
		require.NoError(t, err)
		require.Len(t, views, 4)

		assert.Equal(t, "onboarded", views[0].ID)
		assert.False(t, views[0].Unlocked)
		assert.Nil(t, views[0].UnlockedAt)

		assert.Equal(t, "first-project", views[1].ID)
		assert.True(t, views[1].Unlocked)
		require.NotNil(t, views[1].UnlockedAt)
		assert.Equal(t, at, *views[1].UnlockedAt)
		assert.Equal(t, 25, views[1].XPReward)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		d := newAchievementDeps(t)
		d.achievements.On("ListByUser", mock.Anything, userID).Return(nil, errors.New("connection reset"))

		_, err := d.svc.ListAchievements(context.Background(), userID)
		assert.ErrorContains(t, err, "failed to list achievements")
	})
}

func TestAchievementService_CheckAchievements(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	completed := []*domain.InternProgress{{UserID: userID, ProjectID: "rest-api", Status: domain.ProgressCompleted}}

	t.Run("unlocks earned achievements and credits rewards", func(t *testing.T) {
		t.Parallel()
		d := newAchievementDeps(t)

		user := testUser(userID)
		user.OnboardingCompleted = true
		leveled := testUser(userID)
		leveled.OnboardingCompleted = true
		leveled.XP = 135
		leveled.CurrentLevel = 2
		leveled.Credits = 5

		d.users.On("GetForUpdate", mock.Anything, userID).Return(user, nil)
		d.achievements.On("ListByUser", mock.Anything, userID).Return([]*domain.UserAchievement{}, nil)
		d.simulations.On("ListByUser", mock.Anything, userID).Return([]*domain.Simulation{}, nil)
		d.progress.On("ListByUser", mock.Anything, userID).Return(completed, nil)
		d.achievements.On("Unlock", mock.Anything, userID, "onboarded").Return(true, nil).Once()
		d.achievements.On("Unlock", mock.Anything, userID, "first-project").Return(true, nil).Once()
		d.users.On("UpdateCredits", mock.Anything, userID, 5).Return(5, nil).Once()
		d.users.On("AddXP", mock.Anything, userID, 35).Return(leveled, nil).Once()
		d.achievements.On("Unlock", mock.Anything, userID, "level-two").Return(true, nil).Once()
		d.users.On("UpdateCredits", mock.Anything, userID, 3).Return(8, nil).Once()

		result, err := d.svc.CheckAchievements(context.Background(), userID)
		require.NoError(t, err)

		ids := make([]string, 0, len(result.Unlocked))
		for _, a := range result.Unlocked {
			ids = append(ids, a.ID)
		}
		assert.Equal(t, []string{"onboarded", "first-project", "level-two"}, ids)
		assert.Equal(t, 35, result.XPAwarded)
		assert.Equal(t, 8, result.CreditsAwarded)
		assert.True(t, result.LeveledUp)
		assert.Equal(t, 8, result.User.Credits)
		assert.Equal(t, 1, d.tx.Commits)
		d.users.AssertExpectations(t)
		d.achievements.AssertExpectations(t)
	})

	t.Run("already unlocked achievements are not rewarded again", func(t *testing.T) {
		t.Parallel()
		d := newAchievementDeps(t)

		user := testUser(userID)
		user.OnboardingCompleted = true
		d.users.On("GetForUpdate", mock.Anything, userID).Return(user, nil)
		d.achievements.On("ListByUser", mock.Anything, userID).Return([]*domain.UserAchievement{
			{UserID: userID, AchievementID: "onboarded"},
		}, nil)
		d.simulations.On("ListByUser", mock.Anything, userID).Return([]*domain.Simulation{}, nil)
		d.progress.On("ListByUser", mock.Anything, userID).Return([]*domain.InternProgress{}, nil)

		result, err := d.svc.CheckAchievements(context.Background(), userID)
		require.NoError(t, err)
		assert.Empty(t, result.Unlocked)
		assert.Zero(t, result.XPAwarded)
		assert.False(t, result.LeveledUp)
		d.achievements.AssertNotCalled(t, "Unlock", mock.Anything, mock.Anything, mock.Anything)
		d.users.AssertNotCalled(t, "AddXP", mock.Anything, mock.Anything, mock.Anything)
		d.users.AssertNotCalled(t, "UpdateCredits", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unlock that records nothing grants no reward", func(t *testing.T) {
		t.Parallel()
		d := newAchievementDeps(t)

		user := testUser(userID)
		user.StreakDays = 3
		d.users.On("GetForUpdate", mock.Anything, userID).Return(user, nil)
		d.achievements.On("ListByUser", mock.Anything, userID).Return([]*domain.UserAchievement{}, nil)
		d.simulations.On("ListByUser", mock.Anything, userID).Return([]*domain.Simulation{}, nil)
		d.progress.On("ListByUser", mock.Anything, userID).Return([]*domain.InternProgress{}, nil)
		d.achievements.On("Unlock", mock.Anything, userID, "streak-3").Return(false, nil)

		result, err := d.svc.CheckAchievements(context.Background(), userID)
		require.NoError(t, err)
		assert.Empty(t, result.Unlocked)
		d.users.AssertNotCalled(t, "AddXP", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("failures roll back", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name    string
			setup   func(d *achievementDeps)
			wantErr error
		}{
			{
				name: "unknown user",
				setup: func(d *achievementDeps) {
					d.users.On("GetForUpdate", mock.Anything, userID).Return(nil, store.ErrUserNotFound)
				},
				wantErr: store.ErrUserNotFound,
			},
			{
				name: "reward fails",
				setup: func(d *achievementDeps) {
					user := testUser(userID)
					user.OnboardingCompleted = true
					d.users.On("GetForUpdate", mock.Anything, userID).Return(user, nil)
					d.achievements.On("ListByUser", mock.Anything, userID).Return([]*domain.UserAchievement{}, nil)
					d.simulations.On("ListByUser", mock.Anything, userID).Return([]*domain.Simulation{}, nil)
					d.progress.On("ListByUser", mock.Anything, userID).Return([]*domain.InternProgress{}, nil)
					d.achievements.On("Unlock", mock.Anything, userID, "onboarded").Return(true, nil)
					d.users.On("AddXP", mock.Anything, userID, 10).Return(nil, store.ErrInvalidEntity)
				},
				wantErr: store.ErrInvalidEntity,
			},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				d := newAchievementDeps(t)
				tt.setup(d)

				_, err := d.svc.CheckAchievements(context.Background(), userID)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorContains(t, err, "failed to check achievements")
				assert.Equal(t, 1, d.tx.Rollbacks)
				assert.Zero(t, d.tx.Commits)
			})
		}
	})
}
