package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Store and domain errors are wrapped with operation context using %w
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrInvalidAmount indicates a credit amount or cost that is not positive.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidCredentials indicates an unknown email or a wrong password.
	// Both cases share one error so callers cannot discover registered emails.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
