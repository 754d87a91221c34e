/*
Package handler provides the HTTP handlers and routing for the PongArena server.

This file contains the user directory surface: listing, lookup, the caller's own
profile, and the sensitive field mutations that require password re-verification.
*/
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"pongarena/internal/app/user"
	"pongarena/internal/pkg/auth/session"
	"pongarena/internal/pkg/errs"
	"pongarena/internal/pkg/hashx"
	"pongarena/internal/pkg/logx"
	"pongarena/internal/pkg/req"
	"pongarena/internal/pkg/resp"
)

// ListUsersLimit caps the directory listing.
const ListUsersLimit = 100

// publicProjection expands avatar keys to URLs for a set of users.
func publicProjection(deps *AppDeps, users []*user.User) []user.PublicUser {
	out := make([]user.PublicUser, 0, len(users))
	for _, u := range users {
		p := u.Public()
		p.Avatar = deps.FullAssetURL(u.AvatarKey)
		out = append(out, p)
	}
	return out
}

// HandleListUsers returns public projections of all accounts.
func HandleListUsers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := deps.Users.List(r.Context(), ListUsersLimit)
		if err != nil {
			logx.Error(err, "list users: query failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"users": publicProjection(deps, users),
		})
	}
}

// HandleGetUser returns the public projection of one account by id.
func HandleGetUser(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		u, err := deps.Users.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
				return
			}
			logx.Error(err, "get user: query failed", "id", id)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		p := u.Public()
		p.Avatar = deps.FullAssetURL(u.AvatarKey)

		resp.RespondSuccess(w, r, map[string]any{
			"user": p,
		})
	}
}

// HandleGetProfile returns the caller's own record, including fields not
// exposed in the public projection.
func HandleGetProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := session.FromContext(r)
		if u == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"user": map[string]any{
				"id":           u.ID,
				"username":     u.Username,
				"email":        u.Email,
				"avatar":       deps.FullAssetURL(u.AvatarKey),
				"status":       u.Status,
				"twofaEnabled": u.TwoFAEnabled,
				"createdAt":    u.CreatedAt.Format(time.RFC3339),
			},
		})
	}
}

type UpdatePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// HandleUpdatePassword rotates the password after re-verifying the current
// one. A new password equal to the old one is rejected before any mutation.
// The session token is re-issued with the credential.
func HandleUpdatePassword(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := session.FromContext(r)
		if u == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input UpdatePasswordInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if !validPassword(input.NewPassword) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidPassword))
			return
		}

		if input.NewPassword == input.CurrentPassword {
			resp.RespondError(w, r, errs.NewError(errs.ErrSamePassword))
			return
		}

		if customErr := session.ReverifyPassword(u, input.CurrentPassword); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		salt, err := hashx.DeriveSalt()
		if err != nil {
			logx.Error(err, "update password: salt derivation failed", "user_id", u.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if err := deps.Users.UpdatePassword(r.Context(), u.ID, hashx.Hash(input.NewPassword, salt), salt); err != nil {
			logx.Error(err, "update password: db update failed", "user_id", u.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		token, customErr := issueSession(r.Context(), deps, u)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token": token,
		})
	}
}

type UpdateUsernameInput struct {
	Password string `json:"password"`
	Username string `json:"username"`
}

// HandleUpdateUsername changes the username after password re-verification.
// The display name lives in the token claims, so a fresh token is issued.
func HandleUpdateUsername(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := session.FromContext(r)
		if u == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input UpdateUsernameInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if !usernameRegex.MatchString(input.Username) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidUsername))
			return
		}

		if customErr := session.ReverifyPassword(u, input.Password); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if err := deps.Users.UpdateUsername(r.Context(), u.ID, input.Username); err != nil {
			if errors.Is(err, user.ErrDuplicateUsername) {
				resp.RespondError(w, r, errs.NewError(errs.ErrUsernameTaken))
				return
			}
			logx.Error(err, "update username: db update failed", "user_id", u.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		u.Username = input.Username

		token, customErr := issueSession(r.Context(), deps, u)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token":    token,
			"username": u.Username,
		})
	}
}

type UpdateEmailInput struct {
	Password string `json:"password"`
	Email    string `json:"email"`
}

// HandleUpdateEmail changes the account email after password re-verification.
func HandleUpdateEmail(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := session.FromContext(r)
		if u == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input UpdateEmailInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		email := normalizeEmail(input.Email)
		if !emailRegex.MatchString(email) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidEmail))
			return
		}

		if customErr := session.ReverifyPassword(u, input.Password); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if err := deps.Users.UpdateEmail(r.Context(), u.ID, email); err != nil {
			if errors.Is(err, user.ErrDuplicateEmail) {
				resp.RespondError(w, r, errs.NewError(errs.ErrEmailTaken))
				return
			}
			logx.Error(err, "update email: db update failed", "user_id", u.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"email": email,
		})
	}
}

type UpdateTwoFAInput struct {
	Password string `json:"password"`
	Enabled  bool   `json:"enabled"`
}

// HandleUpdateTwoFA toggles the email two-factor step after password
// re-verification.
func HandleUpdateTwoFA(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := session.FromContext(r)
		if u == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input UpdateTwoFAInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := session.ReverifyPassword(u, input.Password); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if err := deps.Users.SetTwoFAEnabled(r.Context(), u.ID, input.Enabled); err != nil {
			logx.Error(err, "update 2fa: db update failed", "user_id", u.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"twofaEnabled": input.Enabled,
		})
	}
}
