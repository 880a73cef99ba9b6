package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := NewInvalidArgumentError("bad plan key", "planKey must be solo_groups or pro")
	assert.Equal(t, "invalid_argument: bad plan key (planKey must be solo_groups or pro)", err.Error())

	err = NewNotFoundError("booking not found")
	assert.Equal(t, "not_found: booking not found", err.Error())
}

func TestConstructors_Codes(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantCode int
	}{
		{"invalid argument", NewInvalidArgumentError("m"), ErrorTypeInvalidArgument, http.StatusBadRequest},
		{"not found", NewNotFoundError("m"), ErrorTypeNotFound, http.StatusNotFound},
		{"conflict", NewConflictError("m"), ErrorTypeConflict, http.StatusConflict},
		{"unauthenticated", NewUnauthenticatedError("m"), ErrorTypeUnauthenticated, http.StatusUnauthorized},
		{"permission denied", NewPermissionDeniedError("m"), ErrorTypePermissionDenied, http.StatusForbidden},
		{"failed precondition", NewFailedPreconditionError("m"), ErrorTypeFailedPrecondition, http.StatusPreconditionFailed},
		{"internal", NewInternalError("m"), ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestGetAppError_Wrapped(t *testing.T) {
	inner := NewFailedPreconditionError("agency has no billing customer")
	wrapped := fmt.Errorf("create portal session: %w", inner)

	assert.True(t, IsAppError(wrapped))
	assert.True(t, IsFailedPreconditionError(wrapped))

	got := GetAppError(wrapped)
	assert.NotNil(t, got)
	assert.Equal(t, ErrorTypeFailedPrecondition, got.Type)
}

func TestGetAppError_Plain(t *testing.T) {
	err := errors.New("driver: bad connection")
	assert.False(t, IsAppError(err))
	assert.Nil(t, GetAppError(err))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(errors.New("Error 1062: Duplicate entry 'evt_1' for key 'webhook_events.event_id'")))
	assert.True(t, IsDuplicateError(errors.New("UNIQUE constraint failed: webhook_events.event_id")))
	assert.False(t, IsDuplicateError(errors.New("record not found")))
	assert.False(t, IsDuplicateError(nil))
}
