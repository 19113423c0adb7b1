package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is usually wrapped by a *ValidationError naming the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or empty.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error, or ErrValidation when none was given,
// so that errors.Is(err, ErrValidation) holds for every ValidationError.
func (e *ValidationError) Unwrap() error {
	if e.Err == nil {
		return ErrValidation
	}
	return e.Err
}

// Is reports ErrValidation as a match even when a more specific error is wrapped.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// validationErrors are the sentinel errors returned by entity and
// parameter validation.
var validationErrors = []error{
	ErrInvalidID,
	ErrEmptyUserID, ErrEmptyEmail, ErrInvalidEmail, ErrInvalidField, ErrInvalidExperience,
	ErrNegativeCredits, ErrNegativeXP, ErrInvalidLevel, ErrOnboardingIncomplete,
	ErrPasswordTooShort, ErrPasswordTooLong,
	ErrEmptySimulationID, ErrEmptySimulationOwnerID, ErrEmptySimulationTitle,
	ErrInvalidDifficulty, ErrInvalidSimulationLevel,
	ErrEmptyPersonaSimulationID, ErrEmptyPersonaName, ErrEmptyPersonaRole,
	ErrEmptyProgressUserID, ErrEmptyProgressProjectID, ErrInvalidProgressStatus, ErrInvalidTransition,
	ErrUnknownXPReason,
}

// IsValidationError reports whether err is caused by invalid input rather
// than by a storage or infrastructure failure.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrValidation) {
		return true
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
