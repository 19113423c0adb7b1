package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/store"
)

// XPResult is the outcome of an XP award.
type XPResult struct {
	User      *domain.User
	Awarded   int
	LeveledUp bool
}

// GamificationService awards experience and reports level progress
type GamificationService interface {
	// AwardXP grants the XP of reason and recomputes the user's level
	AwardXP(ctx context.Context, userID uuid.UUID, reason domain.XPReason) (*XPResult, error)

	// LevelProgress returns where the user sits on the level ladder
	LevelProgress(ctx context.Context, userID uuid.UUID) (domain.LevelProgress, error)
}

// GamificationServiceImpl implements the GamificationService interface
type GamificationServiceImpl struct {
	userStore store.UserStore
	logger    *slog.Logger
}

// NewGamificationService creates a new GamificationService
func NewGamificationService(userStore store.UserStore, logger *slog.Logger) GamificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GamificationServiceImpl{
		userStore: userStore,
		logger:    logger.With("component", "gamification_service"),
	}
}

// AwardXP grants the XP of reason
func (s *GamificationServiceImpl) AwardXP(
	ctx context.Context,
	userID uuid.UUID,
	reason domain.XPReason,
) (*XPResult, error) {
	result, err := awardXP(ctx, s.userStore, userID, reason)
	if err != nil {
		return nil, err
	}

	if result.LeveledUp {
		s.logger.Info("user leveled up",
			"user_id", userID,
			"reason", reason,
			"level", result.User.CurrentLevel)
	}
	return result, nil
}

// LevelProgress returns where the user sits on the level ladder
func (s *GamificationServiceImpl) LevelProgress(ctx context.Context, userID uuid.UUID) (domain.LevelProgress, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return domain.LevelProgress{}, fmt.Errorf("failed to get level progress: %w", err)
	}
	return domain.ProgressForXP(user.XP), nil
}

// awardXP applies the award of reason through users, which may be bound
// to a transaction.
func awardXP(
	ctx context.Context,
	users store.UserStore,
	userID uuid.UUID,
	reason domain.XPReason,
) (*XPResult, error) {
	xp, err := domain.XPAward(reason)
	if err != nil {
		return nil, domain.NewValidationError("reason", fmt.Sprintf("unknown activity %q", reason), err)
	}

	user, err := users.AddXP(ctx, userID, xp)
	if err != nil {
		return nil, fmt.Errorf("failed to award xp: %w", err)
	}

	previous := domain.LevelForXP(user.XP - xp)
	return &XPResult{
		User:      user,
		Awarded:   xp,
		LeveledUp: user.CurrentLevel > previous.Level,
	}, nil
}
