/*
Package session implements the session gateway: the single place where a bearer
credential is turned into an authenticated user.

Every protected request passes the same chain: extract the "Bearer <token>"
header, verify signature and expiry, then resolve the user directory record
whose stored session token equals the presented one. The last step makes tokens
revocable by overwrite even though the signing scheme itself is stateless: a
second sign-in or a logout invalidates every previously issued token.
*/
package session

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"pongarena/internal/app/user"
	"pongarena/internal/pkg/auth/jwt"
	"pongarena/internal/pkg/errs"
	"pongarena/internal/pkg/hashx"
	"pongarena/internal/pkg/logx"
	"pongarena/internal/pkg/resp"
)

// TokenResolver looks up the account whose stored session token matches the
// presented one. Satisfied by *user.Store.
type TokenResolver interface {
	GetBySessionToken(ctx context.Context, token string) (*user.User, error)
}

type contextKey string

// contextUserKey stores the resolved *user.User in the request context.
const contextUserKey contextKey = "session_user"

// Gateway authenticates requests against the user directory.
type Gateway struct {
	users  TokenResolver
	secret string
}

// NewGateway constructs a Gateway with its dependencies injected explicitly;
// neither the signing secret nor the store is package-global state.
func NewGateway(users TokenResolver, secret string) *Gateway {
	return &Gateway{users: users, secret: secret}
}

// Resolve validates a raw token string and resolves the owning user.
// Failures are typed: an unverifiable token and a verified-but-superseded
// token are distinct conditions.
func (g *Gateway) Resolve(ctx context.Context, tokenString string) (*user.User, *errs.CustomError) {
	if _, err := jwt.ParseToken(tokenString, g.secret); err != nil {
		return nil, errs.NewError(errs.ErrInvalidToken)
	}

	u, err := g.users.GetBySessionToken(ctx, tokenString)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, errs.NewError(errs.ErrSessionExpired)
		}
		logx.Error(err, "session: failed to resolve user by token")
		return nil, errs.NewError(errs.ErrUnknown)
	}

	return u, nil
}

// Require is the middleware applied to every protected route. It rejects
// requests without a well-formed bearer header, verifies the token, resolves
// the user, and injects the record into the request context.
func (g *Gateway) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		u, customErr := g.Resolve(r.Context(), parts[1])
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		ctx := context.WithValue(r.Context(), contextUserKey, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the authenticated user injected by Require, or nil when
// the request did not pass through the gateway.
func FromContext(r *http.Request) *user.User {
	u, ok := r.Context().Value(contextUserKey).(*user.User)
	if !ok {
		return nil
	}
	return u
}

// ReverifyPassword checks a candidate password against the resolved user's
// stored digest. Sensitive mutations (password, username, email, avatar) call
// this before touching the record.
func ReverifyPassword(u *user.User, candidate string) *errs.CustomError {
	if !hashx.Verify(u.PasswordHash, candidate, u.Salt) {
		return errs.NewError(errs.ErrIncorrectPassword)
	}
	return nil
}
