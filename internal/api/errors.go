package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/internsim/practice-api/internal/api/shared"
	"github.com/internsim/practice-api/internal/domain"
	"github.com/internsim/practice-api/internal/service"
	"github.com/internsim/practice-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing their types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusInternalServerError

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.Is(err, store.ErrInsufficientCredits):
		return http.StatusPaymentRequired

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, service.ErrInvalidAmount),
		domain.IsValidationError(err):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err that never
// includes internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrSimulationNotFound):
		return "Simulation not found"
	case errors.Is(err, store.ErrProgressNotFound):
		return "Progress not found"
	case store.IsNotFoundError(err):
		return "Resource not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.Is(err, store.ErrInsufficientCredits):
		return "Insufficient credits"

	case errors.Is(err, domain.ErrInvalidTransition):
		return "Progress cannot move backwards"
	case errors.Is(err, service.ErrInvalidAmount):
		return "Amount must be positive"
	case errors.As(err, &validationErr) && validationErr.Field != "":
		return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)
	case domain.IsValidationError(err), errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the mapped status and a safe message for err and
// logs the redacted error. A non-empty message overrides the safe message
// for client errors; server errors always use the generic text.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)

	userMessage := GetSafeErrorMessage(err)
	if message != "" && status < http.StatusInternalServerError {
		userMessage = message
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, userMessage, err, opts...)
}

// handleRequestError answers a body that failed decoding or validation
// with 400 and a sanitized message.
func handleRequestError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs validator.ValidationErrors
	var domainErr *domain.ValidationError

	message := "Invalid request format"
	switch {
	case errors.As(err, &validationErrs):
		message = SanitizeValidationError(err)
	case errors.As(err, &domainErr), domain.IsValidationError(err):
		message = GetSafeErrorMessage(err)
	case errors.Is(err, shared.ErrEmptyBody):
		message = "Request body is required"
	}

	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, message, err)
}

// SanitizeValidationError turns a validator error into a short message
// naming the first offending field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	fe := validationErrs[0]
	field := jsonFieldName(fe.Field())
	if msg := getValidationTagMessage(fe.Tag()); msg != "" {
		return fmt.Sprintf("Invalid %s: %s", field, msg)
	}
	return fmt.Sprintf("Invalid %s", field)
}

// jsonFieldName converts a Go field name such as ExperienceLevel to its
// snake_case JSON key.
func jsonFieldName(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "gt", "gte":
		return "too small"
	case "lt", "lte":
		return "too large"
	case "url":
		return "invalid URL"
	default:
		return "validation failed"
	}
}
