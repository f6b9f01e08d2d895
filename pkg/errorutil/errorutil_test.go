package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryCodeAndStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"validation", NewValidationError("bad input", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{"not found", NewNotFound("ticket", nil), "NOT_FOUND", http.StatusNotFound},
		{"unauthorized", NewUnauthorized("no session"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"forbidden", NewForbidden("nope"), "FORBIDDEN", http.StatusForbidden},
		{"conflict", NewConflict("already closed", nil), "CONFLICT", http.StatusConflict},
		{"internal", NewInternalError(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var domainErr *DomainError
			require.ErrorAs(t, tc.err, &domainErr)
			assert.Equal(t, tc.code, domainErr.Code)
			assert.Equal(t, tc.status, domainErr.HTTPStatus)
			assert.True(t, IsCode(tc.err, tc.code))
		})
	}
}

func TestIsCodeSeesWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("loading ticket: %w", NewNotFound("ticket", nil))
	assert.True(t, IsCode(wrapped, "NOT_FOUND"))
	assert.False(t, IsCode(wrapped, "CONFLICT"))
	assert.False(t, IsCode(nil, "NOT_FOUND"))
	assert.False(t, IsCode(errors.New("plain"), "NOT_FOUND"))
}

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	notFound := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", notFound.Code)

	passthrough := ToDomainError(NewConflict("duplicate", nil))
	assert.Equal(t, "CONFLICT", passthrough.Code)

	internal := ToDomainError(errors.New("connection refused"))
	assert.Equal(t, "INTERNAL_ERROR", internal.Code)
	assert.Equal(t, "internal server error", internal.Message, "raw cause stays out of the message")
}
