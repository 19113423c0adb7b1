package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/catalog"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/store"
)

// AchievementCatalog lists achievement definitions and evaluates them.
type AchievementCatalog interface {
	Achievements() []catalog.Achievement
	Earnable(stats domain.AchievementStats, earned map[string]bool) []catalog.Achievement
}

// AchievementView is a catalog achievement together with the user's
// unlock state.
type AchievementView struct {
	catalog.Achievement
	Unlocked   bool
	UnlockedAt *time.Time
}

// AchievementCheckResult is the outcome of evaluating a user's achievements.
type AchievementCheckResult struct {
	User           *domain.User
	Unlocked       []catalog.Achievement
	XPAwarded      int
	CreditsAwarded int
	LeveledUp      bool
}

// AchievementService reports and unlocks achievements
type AchievementService interface {
	// ListAchievements returns every catalog achievement in catalog order,
	// marked with whether and when the user unlocked it.
	ListAchievements(ctx context.Context, userID uuid.UUID) ([]AchievementView, error)

	// CheckAchievements unlocks every achievement the user has earned but
	// not yet unlocked, and credits their XP and credit rewards in the same
	// transaction. Rewards that raise the level can unlock further
	// achievements within the same check.
	CheckAchievements(ctx context.Context, userID uuid.UUID) (*AchievementCheckResult, error)
}

// AchievementServiceImpl implements the AchievementService interface
type AchievementServiceImpl struct {
	userStore        store.UserStore
	simulationStore  store.SimulationStore
	progressStore    store.ProgressStore
	achievementStore store.AchievementStore
	transactor       store.Transactor
	catalog          AchievementCatalog
	logger           *slog.Logger
}

// NewAchievementService creates a new AchievementService
func NewAchievementService(
	userStore store.UserStore,
	simulationStore store.SimulationStore,
	progressStore store.ProgressStore,
	achievementStore store.AchievementStore,
	transactor store.Transactor,
	achievementCatalog AchievementCatalog,
	logger *slog.Logger,
) AchievementService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AchievementServiceImpl{
		userStore:        userStore,
		simulationStore:  simulationStore,
		progressStore:    progressStore,
		achievementStore: achievementStore,
		transactor:       transactor,
		catalog:          achievementCatalog,
		logger:           logger.With("component", "achievement_service"),
	}
}

// ListAchievements returns the catalog achievements with the user's unlock state
func (s *AchievementServiceImpl) ListAchievements(ctx context.Context, userID uuid.UUID) ([]AchievementView, error) {
	unlocked, err := s.achievementStore.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list unlocked achievements", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}

	unlockedAt := make(map[string]time.Time, len(unlocked))
	for _, ua := range unlocked {
		unlockedAt[ua.AchievementID] = ua.UnlockedAt
	}

	all := s.catalog.Achievements()
	views := make([]AchievementView, 0, len(all))
	for _, a := range all {
		view := AchievementView{Achievement: a}
		if at, ok := unlockedAt[a.ID]; ok {
			view.Unlocked = true
			view.UnlockedAt = &at
		}
		views = append(views, view)
	}
	return views, nil
}

// CheckAchievements unlocks earned achievements and credits their rewards
func (s *AchievementServiceImpl) CheckAchievements(
	ctx context.Context,
	userID uuid.UUID,
) (*AchievementCheckResult, error) {
	var result *AchievementCheckResult
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		result, err = s.checkInTx(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check achievements: %w", err)
	}

	if len(result.Unlocked) > 0 {
		s.logger.Info("achievements unlocked",
			"user_id", userID,
			"count", len(result.Unlocked),
			"xp", result.XPAwarded,
			"credits", result.CreditsAwarded)
	}
	return result, nil
}

func (s *AchievementServiceImpl) checkInTx(
	ctx context.Context,
	tx *sql.Tx,
	userID uuid.UUID,
) (*AchievementCheckResult, error) {
	users := s.userStore.WithTx(tx)
	achievements := s.achievementStore.WithTx(tx)

	// The lock serializes concurrent checks so each reward is credited once.
	user, err := users.GetForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	unlocked, err := achievements.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	simulations, err := s.simulationStore.WithTx(tx).ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	progress, err := s.progressStore.WithTx(tx).ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	earned := make(map[string]bool, len(unlocked))
	for _, ua := range unlocked {
		earned[ua.AchievementID] = true
	}

	result := &AchievementCheckResult{Unlocked: []catalog.Achievement{}}
	startLevel := user.CurrentLevel

	for {
		due := s.catalog.Earnable(domain.NewAchievementStats(user, simulations, progress), earned)
		if len(due) == 0 {
			break
		}

		xp, credits := 0, 0
		for _, a := range due {
			earned[a.ID] = true
			ok, err := achievements.Unlock(ctx, userID, a.ID)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			result.Unlocked = append(result.Unlocked, a)
			xp += a.XPReward
			credits += a.CreditReward
		}

		if credits > 0 {
			balance, err := users.UpdateCredits(ctx, userID, credits)
			if err != nil {
				return nil, err
			}
			user.Credits = balance
			result.CreditsAwarded += credits
		}
		if xp > 0 {
			user, err = users.AddXP(ctx, userID, xp)
			if err != nil {
				return nil, err
			}
			result.XPAwarded += xp
		}
	}

	result.User = user
	result.LeveledUp = user.CurrentLevel > startLevel
	return result, nil
}
