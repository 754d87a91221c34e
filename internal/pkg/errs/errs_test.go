package errs

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewErrorKnownCode(t *testing.T) {
	t.Parallel()

	customErr := NewError(ErrUserNotFound)

	assert.Equal(t, ErrUserNotFound, customErr.Code)
	assert.Equal(t, http.StatusNotFound, customErr.Status)
	assert.NotEmpty(t, customErr.Message)
}

func TestNewErrorDefaultsToBadRequest(t *testing.T) {
	t.Parallel()

	// Entries without an explicit Status in the map resolve to HTTP 400.
	for _, code := range []int{ErrInvalidParams, ErrMatchInvalid, ErrSamePassword, ErrInvalidEmail} {
		customErr := NewError(code)
		assert.Equal(t, http.StatusBadRequest, customErr.Status, "code %d", code)
	}
}

func TestNewErrorUnknownCodeFallsBack(t *testing.T) {
	t.Parallel()

	customErr := NewError(999999)

	assert.Equal(t, ErrUnknown, customErr.Code)
	assert.Equal(t, http.StatusInternalServerError, customErr.Status)
}

func TestNewErrorStatusMapping(t *testing.T) {
	t.Parallel()

	cases := map[int]int{
		ErrUnauthorized:       http.StatusUnauthorized,
		ErrInvalidToken:       http.StatusUnauthorized,
		ErrSessionExpired:     http.StatusUnauthorized,
		ErrInvalidCredentials: http.StatusUnauthorized,
		ErrTwoFACodeInvalid:   http.StatusUnauthorized,
		ErrIncorrectPassword:  http.StatusForbidden,
		ErrUsernameTaken:      http.StatusConflict,
		ErrEmailTaken:         http.StatusConflict,
		ErrRoomCodeExists:     http.StatusConflict,
		ErrRoomIsFull:         http.StatusConflict,
		ErrUserNotFound:       http.StatusNotFound,
		ErrRoomNotFound:       http.StatusNotFound,
		ErrRateLimitExceeded:  http.StatusTooManyRequests,
		ErrUnknown:            http.StatusInternalServerError,
		ErrMailDeliveryFailed: http.StatusInternalServerError,
		ErrFileStorageFailed:  http.StatusInternalServerError,
	}

	for code, wantStatus := range cases {
		assert.Equal(t, wantStatus, NewError(code).Status, "code %d", code)
	}
}

func TestCustomErrorError(t *testing.T) {
	t.Parallel()

	customErr := NewError(ErrRoomNotFound)
	assert.Contains(t, customErr.Error(), "Game room not found.")
}
