package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/platform/logger"
	"github.com/internsim/practice-api/internal/store"
)

const userColumns = `id, name, email, email_verified, image, hashed_password, bio, field,
	experience_level, interests, region, credits, onboarding_completed, xp, current_level,
	is_premium, streak_days, created_at, updated_at`

// levelForXPExpr is a SQL expression computing the level reached by the XP
// value in expr, derived from domain.LevelThresholds.
func levelForXPExpr(expr string) string {
	var b strings.Builder
	b.WriteString("CASE")
	for i := len(domain.LevelThresholds) - 1; i > 0; i-- {
		t := domain.LevelThresholds[i]
		fmt.Fprintf(&b, " WHEN %s >= %d THEN %d", expr, t.CumulativeXP, t.Level)
	}
	fmt.Fprintf(&b, " ELSE %d END", domain.LevelThresholds[0].Level)
	return b.String()
}

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		logger: s.logger,
	}
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u                        domain.User
		name, image, bio, region sql.NullString
		field, experience        sql.NullString
		emailVerified            sql.NullTime
		interests                []byte
	)

	err := row.Scan(
		&u.ID, &name, &u.Email, &emailVerified, &image, &u.HashedPassword, &bio, &field,
		&experience, &interests, &region, &u.Credits, &u.OnboardingCompleted, &u.XP,
		&u.CurrentLevel, &u.IsPremium, &u.StreakDays, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Name = stringPtr(name)
	u.Image = stringPtr(image)
	u.Bio = stringPtr(bio)
	u.Region = stringPtr(region)
	u.EmailVerified = timePtr(emailVerified)
	u.Field = domain.Field(field.String)
	u.ExperienceLevel = domain.ExperienceLevel(experience.String)
	if err := decodeList("interests", interests, &u.Interests); err != nil {
		return nil, err
	}

	return &u, nil
}

// Create implements store.UserStore.Create
// Returns store.ErrEmailExists if the email is already taken.
func (s *PostgresUserStore) Create(ctx context.Context, params domain.CreateUserParams) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUserFromParams(params)
	if err != nil {
		log.Warn("user validation failed during create", slog.String("error", err.Error()))
		return nil, err
	}

	interests, err := jsonList(user.Interests)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO users (id, name, email, image, hashed_password, bio, field, experience_level,
			interests, region, credits, onboarding_completed, xp, current_level, is_premium,
			streak_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $17)
		RETURNING ` + userColumns

	created, err := scanUser(s.db.QueryRowContext(
		ctx,
		query,
		user.ID,
		user.Name,
		user.Email,
		user.Image,
		user.HashedPassword,
		user.Bio,
		nullIfEmpty(user.Field),
		nullIfEmpty(user.ExperienceLevel),
		interests,
		user.Region,
		user.Credits,
		user.OnboardingCompleted,
		user.XP,
		user.CurrentLevel,
		user.IsPremium,
		user.StreakDays,
		user.CreatedAt,
	))
	if err != nil {
		if isConstraintViolation(err, constraintUsersEmail) {
			log.Debug("email already exists during user creation",
				slog.String("user_id", user.ID.String()))
			return nil, store.ErrEmailExists
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return nil, MapError(err)
	}

	log.Info("user created successfully", slog.String("user_id", created.ID.String()))
	return created, nil
}

// GetByID implements store.UserStore.GetByID
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.getByID(ctx, id, "")
}

// GetForUpdate implements store.UserStore.GetForUpdate
// The row stays locked until the surrounding transaction ends.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.getByID(ctx, id, " FOR UPDATE")
}

func (s *PostgresUserStore) getByID(ctx context.Context, id uuid.UUID, suffix string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1` + suffix

	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("user_id", id.String()))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, MapError(err)
	}

	return user, nil
}

// GetByEmail implements store.UserStore.GetByEmail
// The email is normalized before lookup, so the comparison is case-insensitive.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = $1`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, domain.NormalizeEmail(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found by email")
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by email", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return user, nil
}

// Update implements store.UserStore.Update
// Only the fields set in params are written. An empty patch returns the
// stored user unchanged.
func (s *PostgresUserStore) Update(
	ctx context.Context,
	id uuid.UUID,
	params domain.UpdateUserParams,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := params.Validate(); err != nil {
		log.Warn("user update validation failed",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, err
	}

	if params.IsEmpty() {
		return s.GetByID(ctx, id)
	}

	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}

	if v, ok := params.Name.Get(); ok {
		set("name", v)
	}
	if v, ok := params.Image.Get(); ok {
		set("image", v)
	}
	if v, ok := params.Bio.Get(); ok {
		set("bio", v)
	}
	if v, ok := params.Field.Get(); ok {
		set("field", nullIfEmpty(v))
	}
	if v, ok := params.ExperienceLevel.Get(); ok {
		set("experience_level", nullIfEmpty(v))
	}
	if v, ok := params.Interests.Get(); ok {
		interests, err := jsonList(v)
		if err != nil {
			return nil, err
		}
		set("interests", interests)
	}
	if v, ok := params.Region.Get(); ok {
		set("region", v)
	}
	if v, ok := params.OnboardingCompleted.Get(); ok {
		set("onboarding_completed", v)
	}
	if v, ok := params.CurrentLevel.Get(); ok {
		set("current_level", v)
	}
	if v, ok := params.IsPremium.Get(); ok {
		set("is_premium", v)
	}
	if v, ok := params.StreakDays.Get(); ok {
		set("streak_days", v)
	}
	if v, ok := params.EmailVerified.Get(); ok {
		set("email_verified", v)
	}
	set("updated_at", time.Now().UTC())

	args = append(args, id)
	query := `UPDATE users SET ` + strings.Join(sets, ", ") +
		` WHERE id = $` + strconv.Itoa(len(args)) + ` RETURNING ` + userColumns

	user, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found for update", slog.String("user_id", id.String()))
			return nil, store.ErrUserNotFound
		}
		if isConstraintViolation(err, constraintUsersOnboarding) {
			return nil, domain.NewValidationError(
				"onboarding_completed",
				"requires field and experience_level",
				domain.ErrOnboardingIncomplete,
			)
		}
		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, MapError(err)
	}

	log.Info("user updated successfully",
		slog.String("user_id", id.String()),
		slog.Int("fields", len(sets)-1))
	return user, nil
}

// UpdateCredits implements store.UserStore.UpdateCredits
// The balance check and the increment happen in one conditional UPDATE, so
// concurrent calls never lose an update and never overdraw.
func (s *PostgresUserStore) UpdateCredits(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE users
		SET credits = credits + $1, updated_at = $2
		WHERE id = $3 AND credits + $1 >= 0
		RETURNING credits
	`

	var balance int
	err := s.db.QueryRowContext(ctx, query, delta, time.Now().UTC(), id).Scan(&balance)
	if err == nil {
		log.Info("credits updated",
			slog.String("user_id", id.String()),
			slog.Int("delta", delta),
			slog.Int("balance", balance))
		return balance, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		log.Error("failed to update credits",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return 0, MapError(err)
	}

	// No row matched: either the user is missing or the balance is too low.
	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).
		Scan(&exists); err != nil {
		log.Error("failed to check user existence",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return 0, MapError(err)
	}
	if !exists {
		return 0, store.ErrUserNotFound
	}

	log.Debug("insufficient credits",
		slog.String("user_id", id.String()),
		slog.Int("delta", delta))
	return 0, store.ErrInsufficientCredits
}

// AddXP implements store.UserStore.AddXP
func (s *PostgresUserStore) AddXP(ctx context.Context, id uuid.UUID, delta int) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE users
		SET xp = xp + $1, current_level = ` + levelForXPExpr("xp + $1") + `, updated_at = $2
		WHERE id = $3
		RETURNING ` + userColumns

	user, err := scanUser(s.db.QueryRowContext(ctx, query, delta, time.Now().UTC(), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to add xp",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, MapError(err)
	}

	log.Info("xp added",
		slog.String("user_id", id.String()),
		slog.Int("delta", delta),
		slog.Int("xp", user.XP),
		slog.Int("level", user.CurrentLevel))
	return user, nil
}
