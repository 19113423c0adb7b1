package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// RegisterParams is the registration input. The password is plaintext and
// is hashed before it reaches the store.
type RegisterParams struct {
	Email           string
	Password        string
	Name            *string
	Image           *string
	Bio             *string
	Field           domain.Field
	ExperienceLevel domain.ExperienceLevel
	Interests       []string
	Region          *string
}

// UserService provides user-related operations
type UserService interface {
	// Register creates a user with a bcrypt-hashed password and the
	// configured initial credit balance.
	// Returns store.ErrEmailExists if the email is already registered.
	Register(ctx context.Context, params RegisterParams) (*domain.User, error)

	// Authenticate checks an email and password pair and returns the user.
	// Returns ErrInvalidCredentials if either is wrong.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser retrieves a user by their ID
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// GetUserByEmail retrieves a user by their email address
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateProfile applies a partial update to the user's profile
	UpdateProfile(ctx context.Context, userID uuid.UUID, params domain.UpdateUserParams) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore      store.UserStore
	verifier       PasswordVerifier
	bcryptCost     int
	initialCredits int
	logger         *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	verifier PasswordVerifier,
	bcryptCost int,
	initialCredits int,
	logger *slog.Logger,
) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	if verifier == nil {
		verifier = NewBcryptVerifier()
	}
	return &UserServiceImpl{
		userStore:      userStore,
		verifier:       verifier,
		bcryptCost:     bcryptCost,
		initialCredits: initialCredits,
		logger:         logger.With("component", "user_service"),
	}
}

// Register creates a new user
func (s *UserServiceImpl) Register(ctx context.Context, params RegisterParams) (*domain.User, error) {
	if err := domain.ValidatePassword(params.Password); err != nil {
		return nil, domain.NewValidationError("password", err.Error(), err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userStore.Create(ctx, domain.CreateUserParams{
		Email:           domain.NormalizeEmail(params.Email),
		HashedPassword:  string(hash),
		Name:            params.Name,
		Image:           params.Image,
		Bio:             params.Bio,
		Field:           params.Field,
		ExperienceLevel: params.ExperienceLevel,
		Interests:       params.Interests,
		Region:          params.Region,
		InitialCredits:  s.initialCredits,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register with existing email")
		} else if !domain.IsValidationError(err) {
			s.logger.Error("failed to register user", "error", err)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate verifies the credentials of a registered user
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user for authentication", "error", err)
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	// Accounts created through an external identity provider have no password.
	if user.HashedPassword == "" {
		return nil, ErrInvalidCredentials
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("password mismatch", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve user", "error", err, "user_id", userID)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by their email address
func (s *UserServiceImpl) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("user not found by email")
		} else {
			s.logger.Error("failed to retrieve user by email", "error", err)
		}
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}
	return user, nil
}

// UpdateProfile applies a partial update to the user's profile
func (s *UserServiceImpl) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	params domain.UpdateUserParams,
) (*domain.User, error) {
	user, err := s.userStore.Update(ctx, userID, params)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) && !domain.IsValidationError(err) {
			s.logger.Error("failed to update user profile", "error", err, "user_id", userID)
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("user profile updated", "user_id", userID)
	return user, nil
}
