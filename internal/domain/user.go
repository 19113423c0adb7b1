package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Field is the engineering track a user practices for.
type Field string

// Supported fields.
const (
	FieldFrontend  Field = "frontend"
	FieldBackend   Field = "backend"
	FieldFullstack Field = "fullstack"
	FieldMobile    Field = "mobile"
	FieldData      Field = "data"
	FieldDesign    Field = "design"
)

// IsValid reports whether f is one of the supported fields.
func (f Field) IsValid() bool {
	switch f {
	case FieldFrontend, FieldBackend, FieldFullstack, FieldMobile, FieldData, FieldDesign:
		return true
	default:
		return false
	}
}

// ExperienceLevel is the self-reported seniority of a user.
type ExperienceLevel string

// Supported experience levels.
const (
	ExperienceStudent   ExperienceLevel = "student"
	ExperienceFreshGrad ExperienceLevel = "fresh_grad"
	ExperienceJunior    ExperienceLevel = "junior"
)

// IsValid reports whether l is one of the supported experience levels.
func (l ExperienceLevel) IsValid() bool {
	switch l {
	case ExperienceStudent, ExperienceFreshGrad, ExperienceJunior:
		return true
	default:
		return false
	}
}

// Common validation errors
var (
	ErrEmptyUserID          = errors.New("user ID cannot be empty")
	ErrEmptyEmail           = errors.New("email cannot be empty")
	ErrInvalidEmail         = errors.New("invalid email format")
	ErrInvalidField         = errors.New("invalid field")
	ErrInvalidExperience    = errors.New("invalid experience level")
	ErrNegativeCredits      = errors.New("credits cannot be negative")
	ErrNegativeXP           = errors.New("xp cannot be negative")
	ErrInvalidLevel         = errors.New("current level must be at least 1")
	ErrOnboardingIncomplete = errors.New("field and experience level are required to complete onboarding")
	ErrPasswordTooShort     = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong      = errors.New("password must be at most 72 characters long")
)

// DefaultLevel is the level every new user starts at.
const DefaultLevel = 1

// User is a registered user of the practice platform together with
// their onboarding profile and gamification state.
type User struct {
	ID                  uuid.UUID       `json:"id"`
	Name                *string         `json:"name"`
	Email               string          `json:"email"`
	EmailVerified       *time.Time      `json:"email_verified"`
	Image               *string         `json:"image"`
	HashedPassword      string          `json:"-"` // Never expose password hash in JSON
	Bio                 *string         `json:"bio"`
	Field               Field           `json:"field,omitempty"`
	ExperienceLevel     ExperienceLevel `json:"experience_level,omitempty"`
	Interests           []string        `json:"interests"`
	Region              *string         `json:"region"`
	Credits             int             `json:"credits"`
	OnboardingCompleted bool            `json:"onboarding_completed"`
	XP                  int             `json:"xp"`
	CurrentLevel        int             `json:"current_level"`
	IsPremium           bool            `json:"is_premium"`
	StreakDays          int             `json:"streak_days"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// NewUser creates a new User with system-assigned identity, timestamps and
// gamification defaults. The email is stored normalized. The caller is
// responsible for hashing the password.
func NewUser(email string, initialCredits int) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:           uuid.New(),
		Email:        NormalizeEmail(email),
		Interests:    []string{},
		Credits:      initialCredits,
		CurrentLevel: DefaultLevel,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// CreateUserParams carries the registration input. Identity, timestamps,
// email verification and gamification state are assigned by the system.
// InitialCredits is the configured starting balance, not a caller choice.
type CreateUserParams struct {
	Email           string
	HashedPassword  string
	Name            *string
	Image           *string
	Bio             *string
	Field           Field
	ExperienceLevel ExperienceLevel
	Interests       []string
	Region          *string
	InitialCredits  int
}

// NewUserFromParams builds a validated User from registration input.
func NewUserFromParams(params CreateUserParams) (*User, error) {
	user, err := NewUser(params.Email, params.InitialCredits)
	if err != nil {
		return nil, err
	}

	user.HashedPassword = params.HashedPassword
	user.Name = params.Name
	user.Image = params.Image
	user.Bio = params.Bio
	user.Field = params.Field
	user.ExperienceLevel = params.ExperienceLevel
	user.Interests = nonNil(params.Interests)
	user.Region = params.Region

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !ValidateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.Field != "" && !u.Field.IsValid() {
		return ErrInvalidField
	}

	if u.ExperienceLevel != "" && !u.ExperienceLevel.IsValid() {
		return ErrInvalidExperience
	}

	if u.Credits < 0 {
		return ErrNegativeCredits
	}

	if u.XP < 0 {
		return ErrNegativeXP
	}

	if u.CurrentLevel < 1 {
		return ErrInvalidLevel
	}

	if u.OnboardingCompleted && (u.Field == "" || u.ExperienceLevel == "") {
		return ErrOnboardingIncomplete
	}

	return nil
}

// NormalizeEmail trims and lowercases email. Emails are unique and looked up
// in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmailFormat performs a syntactic check of an email address.
func ValidateEmailFormat(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	// Reject display-name forms such as "Bob <bob@example.com>".
	return addr.Address == email
}

// ValidatePassword checks the length limits of a plaintext password.
// The upper bound is bcrypt's input limit.
func ValidatePassword(password string) error {
	switch {
	case len(password) < 8:
		return ErrPasswordTooShort
	case len(password) > 72:
		return ErrPasswordTooLong
	default:
		return nil
	}
}

// UpdateUserParams is a partial update of a user. Only fields that are set
// are written. Credits and XP are absent: they change only
// through the atomic credit and XP operations.
type UpdateUserParams struct {
	Name                Optional[*string]
	Image               Optional[*string]
	Bio                 Optional[*string]
	Field               Optional[Field]
	ExperienceLevel     Optional[ExperienceLevel]
	Interests           Optional[[]string]
	Region              Optional[*string]
	OnboardingCompleted Optional[bool]
	CurrentLevel        Optional[int]
	IsPremium           Optional[bool]
	StreakDays          Optional[int]
	EmailVerified       Optional[*time.Time]
}

// IsEmpty reports whether no field is set.
func (p UpdateUserParams) IsEmpty() bool {
	return !p.Name.IsSet() && !p.Image.IsSet() && !p.Bio.IsSet() &&
		!p.Field.IsSet() && !p.ExperienceLevel.IsSet() && !p.Interests.IsSet() &&
		!p.Region.IsSet() && !p.OnboardingCompleted.IsSet() && !p.CurrentLevel.IsSet() &&
		!p.IsPremium.IsSet() && !p.StreakDays.IsSet() && !p.EmailVerified.IsSet()
}

// Validate checks the values carried by the patch. Cross-field rules that
// depend on stored state (onboarding requires field and level) are also
// enforced by the store against the resulting row.
func (p UpdateUserParams) Validate() error {
	if f, ok := p.Field.Get(); ok && !f.IsValid() {
		return NewValidationError("field", "must be one of frontend, backend, fullstack, mobile, data, design", ErrInvalidField)
	}
	if l, ok := p.ExperienceLevel.Get(); ok && !l.IsValid() {
		return NewValidationError("experience_level", "must be one of student, fresh_grad, junior", ErrInvalidExperience)
	}
	if lvl, ok := p.CurrentLevel.Get(); ok && lvl < 1 {
		return NewValidationError("current_level", "must be at least 1", ErrInvalidLevel)
	}
	if days, ok := p.StreakDays.Get(); ok && days < 0 {
		return NewValidationError("streak_days", "cannot be negative", nil)
	}
	return nil
}
