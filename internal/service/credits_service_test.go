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

const testSessionCost = 3

func TestCreditsService_GetCredits(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	user := testUser(userID)
	user.Credits = 7

	users := new(mocks.MockUserStore)
	users.On("GetByID", mock.Anything, userID).Return(user, nil)

	credits, err := service.NewCreditsService(users, testSessionCost, discardLogger()).
		GetCredits(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 7, credits)
}

func TestCreditsService_AddCredits(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name    string
		amount  int
		setup   func(users *mocks.MockUserStore)
		want    int
		wantErr error
	}{
		{
			name:   "positive amount",
			amount: 10,
			setup: func(users *mocks.MockUserStore) {
				users.On("UpdateCredits", mock.Anything, userID, 10).Return(10, nil)
			},
			want: 10,
		},
		{
			name:    "zero amount",
			amount:  0,
			setup:   func(*mocks.MockUserStore) {},
			wantErr: service.ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			amount:  -4,
			setup:   func(*mocks.MockUserStore) {},
			wantErr: service.ErrInvalidAmount,
		},
		{
			name:   "unknown user",
			amount: 1,
			setup: func(users *mocks.MockUserStore) {
				users.On("UpdateCredits", mock.Anything, userID, 1).Return(0, store.ErrUserNotFound)
			},
			wantErr: store.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			users := new(mocks.MockUserStore)
			tt.setup(users)

			got, err := service.NewCreditsService(users, testSessionCost, discardLogger()).
				AddCredits(context.Background(), userID, tt.amount)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			users.AssertExpectations(t)
		})
	}
}

func TestCreditsService_CheckAndDeduct(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("deducts the session cost by default", func(t *testing.T) {
		t.Parallel()
		users := new(mocks.MockUserStore)
		users.On("UpdateCredits", mock.Anything, userID, -testSessionCost).Return(2, nil)

		result, err := service.NewCreditsService(users, testSessionCost, discardLogger()).
			CheckAndDeduct(context.Background(), userID, 0)
		require.NoError(t, err)
		assert.Equal(t, service.DeductResult{Success: true, Remaining: 2}, result)
		users.AssertExpectations(t)
	})

	t.Run("insufficient balance is an unsuccessful result", func(t *testing.T) {
		t.Parallel()
		users := new(mocks.MockUserStore)
		user := testUser(userID)
		user.Credits = 1
		users.On("UpdateCredits", mock.Anything, userID, -5).Return(0, store.ErrInsufficientCredits)
		users.On("GetByID", mock.Anything, userID).Return(user, nil)

		result, err := service.NewCreditsService(users, testSessionCost, discardLogger()).
			CheckAndDeduct(context.Background(), userID, 5)
		require.NoError(t, err)
		assert.Equal(t, service.DeductResult{Success: false, Remaining: 1}, result)
	})

	t.Run("negative cost", func(t *testing.T) {
		t.Parallel()
		users := new(mocks.MockUserStore)

		_, err := service.NewCreditsService(users, testSessionCost, discardLogger()).
			CheckAndDeduct(context.Background(), userID, -1)
		assert.ErrorIs(t, err, service.ErrInvalidAmount)
		assert.True(t, domain.IsValidationError(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		users := new(mocks.MockUserStore)
		users.On("UpdateCredits", mock.Anything, userID, -1).Return(0, store.ErrUserNotFound)

		_, err := service.NewCreditsService(users, testSessionCost, discardLogger()).
			CheckAndDeduct(context.Background(), userID, 1)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}
