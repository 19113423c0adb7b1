package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "amount must be positive", ErrInvalidAmount.Error())
	assert.Equal(t, "invalid email or password", ErrInvalidCredentials.Error())
	assert.False(t, errors.Is(ErrInvalidAmount, ErrInvalidCredentials))
}
