package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Error(t *testing.T) {
	err := NewDomainError("NOT_FOUND", "Session not found")
	assert.Equal(t, "Session not found", err.Error())
	assert.Equal(t, "NOT_FOUND", err.Code)
}

func TestDomainError_Is(t *testing.T) {
	t.Run("matches sentinel by code", func(t *testing.T) {
		err := NewDomainError("NOT_FOUND", "Session not found")
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.False(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		err := fmt.Errorf("lookup: %w", ErrPlatformNotConnected)
		assert.True(t, errors.Is(err, ErrPlatformNotConnected))
	})

	t.Run("does not match plain errors", func(t *testing.T) {
		assert.False(t, errors.Is(errors.New("NOT_FOUND"), ErrNotFound))
	})

	t.Run("WithMessage keeps the sentinel code", func(t *testing.T) {
		err := ErrNotFound.WithMessage("Session not found")
		assert.Equal(t, "NOT_FOUND", err.Code)
		assert.Equal(t, "Session not found", err.Error())
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.NotSame(t, ErrNotFound, err)
		assert.Equal(t, "Resource not found", ErrNotFound.Message)
	})

	t.Run("errors.As extracts the domain error", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", ErrInvalidOAuthState)
		var domainErr *DomainError
		assert.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_OAUTH_STATE", domainErr.Code)
	})
}
