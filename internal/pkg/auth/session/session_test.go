package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pongarena/internal/app/user"
	"pongarena/internal/pkg/auth/jwt"
	"pongarena/internal/pkg/errs"
	"pongarena/internal/pkg/hashx"
)

const testSecret = "unit-test-secret"

// stubResolver serves a single user keyed by its stored session token.
type stubResolver struct {
	user *user.User
}

func (s *stubResolver) GetBySessionToken(_ context.Context, token string) (*user.User, error) {
	if s.user != nil && s.user.SessionToken == token {
		return s.user, nil
	}
	return nil, user.ErrNotFound
}

func signedToken(t *testing.T, userID int64, duration time.Duration) string {
	t.Helper()

	token, err := jwt.GenerateToken(&jwt.Payload{SubjectID: userID, DisplayName: "tester"}, testSecret, duration)
	require.NoError(t, err)
	return token
}

func TestResolveSuccess(t *testing.T) {
	t.Parallel()

	token := signedToken(t, 42, time.Hour)
	gw := NewGateway(&stubResolver{user: &user.User{ID: 42, SessionToken: token}}, testSecret)

	u, customErr := gw.Resolve(context.Background(), token)
	require.Nil(t, customErr)
	assert.Equal(t, int64(42), u.ID)
}

func TestResolveInvalidToken(t *testing.T) {
	t.Parallel()

	gw := NewGateway(&stubResolver{}, testSecret)

	_, customErr := gw.Resolve(context.Background(), "garbage")
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrInvalidToken, customErr.Code)
}

func TestResolveSupersededToken(t *testing.T) {
	t.Parallel()

	// A verifiable token that no longer matches any stored session token has
	// been overwritten by a newer sign-in.
	old := signedToken(t, 42, time.Hour)
	current := signedToken(t, 42, time.Hour)
	gw := NewGateway(&stubResolver{user: &user.User{ID: 42, SessionToken: current}}, testSecret)

	_, customErr := gw.Resolve(context.Background(), old)
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrSessionExpired, customErr.Code)
}

func TestRequireMissingHeader(t *testing.T) {
	t.Parallel()

	gw := NewGateway(&stubResolver{}, testSecret)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)

	gw.Require(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run without credentials")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireMalformedHeader(t *testing.T) {
	t.Parallel()

	gw := NewGateway(&stubResolver{}, testSecret)

	for _, header := range []string{"Bearer", "Basic abc", "Bearertoken"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)

		gw.Require(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatalf("handler must not run for header %q", header)
		})).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestRequireInjectsUser(t *testing.T) {
	t.Parallel()

	token := signedToken(t, 7, time.Hour)
	gw := NewGateway(&stubResolver{user: &user.User{ID: 7, Username: "pong", SessionToken: token}}, testSecret)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	var seen *user.User
	gw.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r)
	})).ServeHTTP(rec, req)

	require.NotNil(t, seen)
	assert.Equal(t, int64(7), seen.ID)
	assert.Equal(t, "pong", seen.Username)
}

func TestFromContextWithoutGateway(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, FromContext(req))
}

func TestReverifyPassword(t *testing.T) {
	t.Parallel()

	salt, err := hashx.DeriveSalt()
	require.NoError(t, err)

	u := &user.User{PasswordHash: hashx.Hash("hunter22", salt), Salt: salt}

	assert.Nil(t, ReverifyPassword(u, "hunter22"))

	customErr := ReverifyPassword(u, "hunter23")
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrIncorrectPassword, customErr.Code)
}
