package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/internsim/practice-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "wrapped ErrNotFound", err: fmt.Errorf("failed: %w", ErrNotFound), expected: true},
		{name: "ErrUserNotFound", err: ErrUserNotFound, expected: true},
		{name: "wrapped ErrSimulationNotFound", err: fmt.Errorf("get: %w", ErrSimulationNotFound), expected: true},
		{name: "ErrProgressNotFound", err: ErrProgressNotFound, expected: true},
		{name: "ErrEmailExists", err: ErrEmailExists, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFoundError(tt.err); got != tt.expected {
				t.Errorf("IsNotFoundError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	assert.False(t, IsDuplicateError(nil))
	assert.False(t, IsDuplicateError(ErrUserNotFound))
	assert.True(t, IsDuplicateError(ErrDuplicate))
	assert.True(t, IsDuplicateError(fmt.Errorf("create user: %w", ErrEmailExists)))
}

func TestErrInvalidTransitionWrapsDomainError(t *testing.T) {
	assert.ErrorIs(t, ErrInvalidTransition, domain.ErrInvalidTransition)
	assert.False(t, IsNotFoundError(ErrInvalidTransition))
}

func TestStoreError(t *testing.T) {
	originalErr := errors.New("database connection failed")
	storeErr := NewStoreError("persona", "create", "database error", originalErr)

	assert.Equal(t,
		"create operation on persona failed: database error: database connection failed",
		storeErr.Error())
	assert.ErrorIs(t, storeErr, originalErr)

	var target *StoreError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", storeErr), &target))
	assert.Equal(t, "persona", target.Entity)

	bare := &StoreError{Entity: "user", Operation: "update", Message: "no fields"}
	assert.Equal(t, "update operation on user failed: no fields", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
