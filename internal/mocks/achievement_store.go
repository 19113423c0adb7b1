package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockAchievementStore is a mock of store.AchievementStore interface for use with testify/mock
type MockAchievementStore struct {
	mock.Mock
}

var _ store.AchievementStore = (*MockAchievementStore)(nil)

// ListByUser is a mock implementation of store.AchievementStore.ListByUser
func (m *MockAchievementStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserAchievement, error) {
	args := m.Called(ctx, userID)
	if unlocked, ok := args.Get(0).([]*domain.UserAchievement); ok {
		return unlocked, args.Error(1)
	}
	return nil, args.Error(1)
}

// Unlock is a mock implementation of store.AchievementStore.Unlock
func (m *MockAchievementStore) Unlock(ctx context.Context, userID uuid.UUID, achievementID string) (bool, error) {
	args := m.Called(ctx, userID, achievementID)
	return args.Bool(0), args.Error(1)
}

// WithTx returns the mock itself.
func (m *MockAchievementStore) WithTx(tx *sql.Tx) store.AchievementStore {
	return m
}
