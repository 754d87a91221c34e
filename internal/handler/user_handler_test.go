package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pongarena/internal/app/user"
	"pongarena/internal/configs"
	"pongarena/internal/pkg/auth/jwt"
	"pongarena/internal/pkg/auth/session"
	"pongarena/internal/pkg/errs"
	"pongarena/internal/pkg/hashx"
)

const testSecret = "unit-test-secret"

// stubTokenStore serves a single user keyed by its stored session token.
type stubTokenStore struct {
	u *user.User
}

func (s *stubTokenStore) GetBySessionToken(_ context.Context, token string) (*user.User, error) {
	if s.u != nil && s.u.SessionToken == token {
		return s.u, nil
	}
	return nil, user.ErrNotFound
}

func authedDeps(t *testing.T, u *user.User) (*AppDeps, string) {
	t.Helper()

	token, err := jwt.GenerateToken(&jwt.Payload{SubjectID: u.ID, DisplayName: u.Username}, testSecret, time.Hour)
	require.NoError(t, err)
	u.SessionToken = token

	deps := &AppDeps{
		Config:  &configs.AppConfig{JWTSecret: testSecret, SessionTTL: time.Hour},
		Gateway: session.NewGateway(&stubTokenStore{u: u}, testSecret),
	}
	return deps, token
}

func postJSON(token, path, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) int {
	t.Helper()

	var envelope struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Code
}

func TestUpdatePasswordRejectsUnchangedPassword(t *testing.T) {
	t.Parallel()

	deps, token := authedDeps(t, &user.User{ID: 9, Username: "pong"})

	// Users is nil: the same-password rejection must come before any store
	// access, or this test panics.
	rec := httptest.NewRecorder()
	req := postJSON(token, "/api/user/password", `{"currentPassword":"unchanged1","newPassword":"unchanged1"}`)

	deps.Gateway.Require(HandleUpdatePassword(deps)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errs.ErrSamePassword, decodeEnvelope(t, rec))
}

func TestUpdatePasswordRejectsWrongCurrentPassword(t *testing.T) {
	t.Parallel()

	salt, err := hashx.DeriveSalt()
	require.NoError(t, err)

	u := &user.User{ID: 9, Username: "pong", PasswordHash: hashx.Hash("hunter22x", salt), Salt: salt}
	deps, token := authedDeps(t, u)

	rec := httptest.NewRecorder()
	req := postJSON(token, "/api/user/password", `{"currentPassword":"wrong-pass","newPassword":"brand-new-1"}`)

	deps.Gateway.Require(HandleUpdatePassword(deps)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, errs.ErrIncorrectPassword, decodeEnvelope(t, rec))
}

func TestUpdatePasswordRejectsShortNewPassword(t *testing.T) {
	t.Parallel()

	deps, token := authedDeps(t, &user.User{ID: 9, Username: "pong"})

	rec := httptest.NewRecorder()
	req := postJSON(token, "/api/user/password", `{"currentPassword":"hunter22x","newPassword":"tiny"}`)

	deps.Gateway.Require(HandleUpdatePassword(deps)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errs.ErrInvalidPassword, decodeEnvelope(t, rec))
}
