package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/service"
)

// UserDTO is the public view of a user.
type UserDTO struct {
	ID                  uuid.UUID  `json:"id"`
	Name                *string    `json:"name"`
	Email               string     `json:"email"`
	EmailVerified       *time.Time `json:"email_verified"`
	Image               *string    `json:"image"`
	Bio                 *string    `json:"bio"`
	Field               string     `json:"field,omitempty"`
	ExperienceLevel     string     `json:"experience_level,omitempty"`
	Interests           []string   `json:"interests"`
	Region              *string    `json:"region"`
	Credits             int        `json:"credits"`
	OnboardingCompleted bool       `json:"onboarding_completed"`
	XP                  int        `json:"xp"`
	CurrentLevel        int        `json:"current_level"`
	IsPremium           bool       `json:"is_premium"`
	StreakDays          int        `json:"streak_days"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// NewUserDTO maps a domain user to its public view.
func NewUserDTO(u *domain.User) UserDTO {
	interests := u.Interests
	if interests == nil {
		interests = []string{}
	}
	return UserDTO{
		ID:                  u.ID,
		Name:                u.Name,
		Email:               u.Email,
		EmailVerified:       u.EmailVerified,
		Image:               u.Image,
		Bio:                 u.Bio,
		Field:               string(u.Field),
		ExperienceLevel:     string(u.ExperienceLevel),
		Interests:           interests,
		Region:              u.Region,
		Credits:             u.Credits,
		OnboardingCompleted: u.OnboardingCompleted,
		XP:                  u.XP,
		CurrentLevel:        u.CurrentLevel,
		IsPremium:           u.IsPremium,
		StreakDays:          u.StreakDays,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

// CreateUserDTO is the registration payload.
type CreateUserDTO struct {
	Email           string   `json:"email"            validate:"required,email"`
	Password        string   `json:"password"         validate:"required,min=8,max=72"`
	Name            *string  `json:"name"             validate:"omitempty,max=100"`
	Image           *string  `json:"image"            validate:"omitempty,url"`
	Bio             *string  `json:"bio"              validate:"omitempty,max=500"`
	Field           string   `json:"field"            validate:"omitempty,oneof=frontend backend fullstack mobile data design"`
	ExperienceLevel string   `json:"experience_level" validate:"omitempty,oneof=student fresh_grad junior"`
	Interests       []string `json:"interests"        validate:"omitempty,max=20,dive,min=1,max=50"`
	Region          *string  `json:"region"           validate:"omitempty,max=100"`
}

// ToRegisterParams converts the payload to service input.
func (d CreateUserDTO) ToRegisterParams() service.RegisterParams {
	return service.RegisterParams{
		Email:           d.Email,
		Password:        d.Password,
		Name:            d.Name,
		Image:           d.Image,
		Bio:             d.Bio,
		Field:           domain.Field(d.Field),
		ExperienceLevel: domain.ExperienceLevel(d.ExperienceLevel),
		Interests:       d.Interests,
		Region:          d.Region,
	}
}

// UpdateUserDTO is a partial profile update. Credits, XP, level and premium
// state are not patchable through it.
type UpdateUserDTO struct {
	Name            domain.Optional[*string]                `json:"name"`
	Image           domain.Optional[*string]                `json:"image"`
	Bio             domain.Optional[*string]                `json:"bio"`
	Field           domain.Optional[domain.Field]           `json:"field"`
	ExperienceLevel domain.Optional[domain.ExperienceLevel] `json:"experience_level"`
	Interests       domain.Optional[[]string]               `json:"interests"`
	Region          domain.Optional[*string]                `json:"region"`
}

// ToParams converts the payload to a domain patch. An explicit null for
// interests clears them to an empty list.
func (d UpdateUserDTO) ToParams() domain.UpdateUserParams {
	interests := d.Interests
	if v, ok := interests.Get(); ok && v == nil {
		interests = domain.Some([]string{})
	}
	return domain.UpdateUserParams{
		Name:            d.Name,
		Image:           d.Image,
		Bio:             d.Bio,
		Field:           d.Field,
		ExperienceLevel: d.ExperienceLevel,
		Interests:       interests,
		Region:          d.Region,
	}
}

var profileValidator = validator.New()

// profileLimits carries the patched values that registration also bounds.
type profileLimits struct {
	Name      *string  `validate:"omitempty,max=100"`
	Image     *string  `validate:"omitempty,url"`
	Bio       *string  `validate:"omitempty,max=500"`
	Interests []string `validate:"omitempty,max=20,dive,min=1,max=50"`
	Region    *string  `validate:"omitempty,max=100"`
}

// Validate checks the supplied values against the same limits as
// registration. Missing and null fields are not checked.
func (d UpdateUserDTO) Validate() error {
	params := d.ToParams()
	if err := params.Validate(); err != nil {
		return err
	}

	var limits profileLimits
	limits.Name, _ = params.Name.Get()
	limits.Image, _ = params.Image.Get()
	limits.Bio, _ = params.Bio.Get()
	limits.Interests, _ = params.Interests.Get()
	limits.Region, _ = params.Region.Get()
	return profileValidator.Struct(limits)
}

// LoginDTO is the credential check payload.
type LoginDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// OnboardingDTO is the onboarding completion payload.
type OnboardingDTO struct {
	Field           string   `json:"field"            validate:"required,oneof=frontend backend fullstack mobile data design"`
	ExperienceLevel string   `json:"experience_level" validate:"required,oneof=student fresh_grad junior"`
	Interests       []string `json:"interests"        validate:"omitempty,max=20,dive,min=1,max=50"`
}

// ToInput converts the payload to service input.
func (d OnboardingDTO) ToInput() service.OnboardingInput {
	return service.OnboardingInput{
		Field:           domain.Field(d.Field),
		ExperienceLevel: domain.ExperienceLevel(d.ExperienceLevel),
		Interests:       d.Interests,
	}
}
