package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/store"
)

// DeductResult reports the outcome of CheckAndDeduct. An insufficient
// balance is an unsuccessful result, not an error.
type DeductResult struct {
	Success   bool
	Remaining int
}

// CreditsService manages the credit balance of users
type CreditsService interface {
	// GetCredits returns the current balance
	GetCredits(ctx context.Context, userID uuid.UUID) (int, error)

	// AddCredits adds a positive amount and returns the new balance
	AddCredits(ctx context.Context, userID uuid.UUID, amount int) (int, error)

	// CheckAndDeduct deducts cost when the balance covers it. A zero cost
	// deducts the configured session cost.
	CheckAndDeduct(ctx context.Context, userID uuid.UUID, cost int) (DeductResult, error)
}

// CreditsServiceImpl implements the CreditsService interface
type CreditsServiceImpl struct {
	userStore   store.UserStore
	sessionCost int
	logger      *slog.Logger
}

// NewCreditsService creates a new CreditsService
func NewCreditsService(userStore store.UserStore, sessionCost int, logger *slog.Logger) CreditsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CreditsServiceImpl{
		userStore:   userStore,
		sessionCost: sessionCost,
		logger:      logger.With("component", "credits_service"),
	}
}

// GetCredits returns the current balance
func (s *CreditsServiceImpl) GetCredits(ctx context.Context, userID uuid.UUID) (int, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get credits: %w", err)
	}
	return user.Credits, nil
}

// AddCredits adds a positive amount and returns the new balance
func (s *CreditsServiceImpl) AddCredits(ctx context.Context, userID uuid.UUID, amount int) (int, error) {
	if amount <= 0 {
		return 0, domain.NewValidationError("amount", "must be positive", ErrInvalidAmount)
	}

	balance, err := s.userStore.UpdateCredits(ctx, userID, amount)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to add credits", "error", err, "user_id", userID)
		}
		return 0, fmt.Errorf("failed to add credits: %w", err)
	}

	s.logger.Info("credits added", "user_id", userID, "amount", amount, "balance", balance)
	return balance, nil
}

// CheckAndDeduct deducts cost when the balance covers it
func (s *CreditsServiceImpl) CheckAndDeduct(
	ctx context.Context,
	userID uuid.UUID,
	cost int,
) (DeductResult, error) {
	if cost < 0 {
		return DeductResult{}, domain.NewValidationError("cost", "must be positive", ErrInvalidAmount)
	}
	if cost == 0 {
		cost = s.sessionCost
	}

	balance, err := s.userStore.UpdateCredits(ctx, userID, -cost)
	if err == nil {
		s.logger.Info("credits deducted", "user_id", userID, "cost", cost, "balance", balance)
		return DeductResult{Success: true, Remaining: balance}, nil
	}

	if !errors.Is(err, store.ErrInsufficientCredits) {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to deduct credits", "error", err, "user_id", userID)
		}
		return DeductResult{}, fmt.Errorf("failed to deduct credits: %w", err)
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return DeductResult{}, fmt.Errorf("failed to read balance: %w", err)
	}

	s.logger.Debug("insufficient credits", "user_id", userID, "cost", cost, "balance", user.Credits)
	return DeductResult{Success: false, Remaining: user.Credits}, nil
}
