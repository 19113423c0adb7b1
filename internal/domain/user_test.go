package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	t.Parallel() // Enable parallel execution

	user, err := NewUser("test@example.com", 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Credits != 0 {
		t.Errorf("Expected 0 credits, got %d", user.Credits)
	}

	if user.XP != 0 {
		t.Errorf("Expected 0 xp, got %d", user.XP)
	}

	if user.CurrentLevel != DefaultLevel {
		t.Errorf("Expected level %d, got %d", DefaultLevel, user.CurrentLevel)
	}

	if user.OnboardingCompleted {
		t.Error("Expected onboarding to be incomplete")
	}

	if user.Interests == nil {
		t.Error("Expected non-nil interests slice")
	}

	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}

	// Test invalid email
	_, err = NewUser("", 0)
	if err != ErrEmptyEmail {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmail, err)
	}

	_, err = NewUser("invalidemail", 0)
	if err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	// Test negative initial balance
	_, err = NewUser("test@example.com", -1)
	if err != ErrNegativeCredits {
		t.Errorf("Expected error %v, got %v", ErrNegativeCredits, err)
	}
}

func TestUserValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	validUser := User{
		ID:           uuid.New(),
		Email:        "test@example.com",
		CurrentLevel: 1,
	}

	tests := []struct {
		name    string
		mutate  func(u *User)
		wantErr error
	}{
		{name: "valid", mutate: func(u *User) {}},
		{name: "nil_id", mutate: func(u *User) { u.ID = uuid.Nil }, wantErr: ErrEmptyUserID},
		{name: "empty_email", mutate: func(u *User) { u.Email = "" }, wantErr: ErrEmptyEmail},
		{name: "display_name_email", mutate: func(u *User) { u.Email = "Bob <bob@example.com>" }, wantErr: ErrInvalidEmail},
		{name: "unknown_field", mutate: func(u *User) { u.Field = "devops" }, wantErr: ErrInvalidField},
		{name: "unknown_experience", mutate: func(u *User) { u.ExperienceLevel = "senior" }, wantErr: ErrInvalidExperience},
		{name: "negative_credits", mutate: func(u *User) { u.Credits = -5 }, wantErr: ErrNegativeCredits},
		{name: "negative_xp", mutate: func(u *User) { u.XP = -1 }, wantErr: ErrNegativeXP},
		{name: "zero_level", mutate: func(u *User) { u.CurrentLevel = 0 }, wantErr: ErrInvalidLevel},
		{
			name:    "onboarding_without_field",
			mutate:  func(u *User) { u.OnboardingCompleted = true; u.ExperienceLevel = ExperienceJunior },
			wantErr: ErrOnboardingIncomplete,
		},
		{
			name:    "onboarding_without_experience",
			mutate:  func(u *User) { u.OnboardingCompleted = true; u.Field = FieldBackend },
			wantErr: ErrOnboardingIncomplete,
		},
		{
			name: "onboarding_complete",
			mutate: func(u *User) {
				u.OnboardingCompleted = true
				u.Field = FieldBackend
				u.ExperienceLevel = ExperienceJunior
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validUser
			tt.mutate(&u)
			if err := u.Validate(); err != tt.wantErr {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel() // Enable parallel execution

	if err := ValidatePassword("short"); err != ErrPasswordTooShort {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooShort, err)
	}

	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	if err := ValidatePassword(string(long)); err != ErrPasswordTooLong {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooLong, err)
	}

	if err := ValidatePassword("correct horse battery"); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestUpdateUserParams(t *testing.T) {
	t.Parallel() // Enable parallel execution

	if !(UpdateUserParams{}).IsEmpty() {
		t.Error("Expected zero patch to be empty")
	}

	patch := UpdateUserParams{Bio: Some[*string](nil)}
	if patch.IsEmpty() {
		t.Error("Expected patch clearing bio to be non-empty")
	}

	err := UpdateUserParams{Field: Some(Field("devops"))}.Validate()
	if !errors.Is(err, ErrValidation) || !errors.Is(err, ErrInvalidField) {
		t.Errorf("Expected invalid field validation error, got %v", err)
	}

	err = UpdateUserParams{ExperienceLevel: Some(ExperienceLevel("staff"))}.Validate()
	if !errors.Is(err, ErrInvalidExperience) {
		t.Errorf("Expected invalid experience error, got %v", err)
	}

	err = UpdateUserParams{CurrentLevel: Some(0)}.Validate()
	if !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("Expected invalid level error, got %v", err)
	}

	err = UpdateUserParams{StreakDays: Some(-2)}.Validate()
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}

	err = UpdateUserParams{Field: Some(FieldData), ExperienceLevel: Some(ExperienceStudent)}.Validate()
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestNewUserFromParams(t *testing.T) {
	t.Parallel() // Enable parallel execution

	name := "Ada"
	user, err := NewUserFromParams(CreateUserParams{
		Email:           "ada@example.com",
		HashedPassword:  "hash",
		Name:            &name,
		Field:           FieldBackend,
		ExperienceLevel: ExperienceJunior,
		InitialCredits:  5,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.Credits != 5 || user.XP != 0 || user.CurrentLevel != DefaultLevel || user.OnboardingCompleted {
		t.Errorf("Unexpected gamification defaults: %+v", user)
	}

	if user.Field != FieldBackend || user.ExperienceLevel != ExperienceJunior {
		t.Errorf("Expected profile to be copied, got field=%q level=%q", user.Field, user.ExperienceLevel)
	}

	if user.Interests == nil {
		t.Error("Expected non-nil interests slice")
	}

	_, err = NewUserFromParams(CreateUserParams{Email: "ada@example.com", Field: "devops"})
	if err != ErrInvalidField {
		t.Errorf("Expected error %v, got %v", ErrInvalidField, err)
	}
}

func TestNewUserNormalizesEmail(t *testing.T) {
	t.Parallel()

	user, err := NewUser("  Bob@Example.COM ", 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Email != "bob@example.com" {
		t.Errorf("Expected normalized email, got %q", user.Email)
	}

	if NormalizeEmail("bob@example.com") != NormalizeEmail("BOB@example.com") {
		t.Error("Expected emails differing only in case to normalize equally")
	}
}
