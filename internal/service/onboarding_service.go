package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/store"
)

// OnboardingInput is the profile collected by the onboarding flow.
type OnboardingInput struct {
	Field           domain.Field
	ExperienceLevel domain.ExperienceLevel
	Interests       []string
}

// Validate checks that both enums are set to supported values.
func (in OnboardingInput) Validate() error {
	if !in.Field.IsValid() {
		return domain.NewValidationError("field", "must be one of frontend, backend, fullstack, mobile, data, design",
			domain.ErrInvalidField)
	}
	if !in.ExperienceLevel.IsValid() {
		return domain.NewValidationError("experience_level", "must be one of student, fresh_grad, junior",
			domain.ErrInvalidExperience)
	}
	return nil
}

// OnboardingService completes the onboarding of new users
type OnboardingService interface {
	// CompleteOnboarding stores the profile and marks onboarding complete.
	// The first completion also awards the onboarding XP.
	CompleteOnboarding(ctx context.Context, userID uuid.UUID, input OnboardingInput) (*domain.User, error)
}

// OnboardingServiceImpl implements the OnboardingService interface
type OnboardingServiceImpl struct {
	userStore  store.UserStore
	transactor store.Transactor
	logger     *slog.Logger
}

// NewOnboardingService creates a new OnboardingService
func NewOnboardingService(
	userStore store.UserStore,
	transactor store.Transactor,
	logger *slog.Logger,
) OnboardingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &OnboardingServiceImpl{
		userStore:  userStore,
		transactor: transactor,
		logger:     logger.With("component", "onboarding_service"),
	}
}

// CompleteOnboarding stores the profile and marks onboarding complete
func (s *OnboardingServiceImpl) CompleteOnboarding(
	ctx context.Context,
	userID uuid.UUID,
	input OnboardingInput,
) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	interests := input.Interests
	if interests == nil {
		interests = []string{}
	}

	var user *domain.User
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		users := s.userStore.WithTx(tx)

		// The lock serializes concurrent completions so only the first awards XP.
		current, err := users.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		user, err = users.Update(ctx, userID, domain.UpdateUserParams{
			Field:               domain.Some(input.Field),
			ExperienceLevel:     domain.Some(input.ExperienceLevel),
			Interests:           domain.Some(interests),
			OnboardingCompleted: domain.Some(true),
		})
		if err != nil {
			return err
		}

		if current.OnboardingCompleted {
			return nil
		}

		result, err := awardXP(ctx, users, userID, domain.XPOnboardingCompleted)
		if err != nil {
			return err
		}
		user = result.User
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to complete onboarding: %w", err)
	}

	s.logger.Info("onboarding completed",
		"user_id", userID,
		"field", input.Field,
		"experience_level", input.ExperienceLevel)
	return user, nil
}
