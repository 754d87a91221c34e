/*
Package handler provides the HTTP handlers and routing for the PongArena server.

This file contains the entry points of the credential lifecycle: registration,
sign-in (with the optional email two-factor step), logout, and the password
recovery flow.
*/
package handler

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"pongarena/internal/app/user"
	"pongarena/internal/pkg/auth/jwt"
	"pongarena/internal/pkg/auth/session"
	"pongarena/internal/pkg/errs"
	"pongarena/internal/pkg/hashx"
	"pongarena/internal/pkg/logx"
	"pongarena/internal/pkg/randx"
	"pongarena/internal/pkg/req"
	"pongarena/internal/pkg/resp"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-z0-9_]{4,20}$`)
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

const (
	// TempPasswordMinLength and TempPasswordMaxLength bound the generated
	// recovery password.
	TempPasswordMinLength = 10
	TempPasswordMaxLength = 13
)

// validPassword bounds the password length in runes.
func validPassword(password string) bool {
	n := utf8.RuneCountInString(password)
	return n >= 6 && n <= 50
}

// normalizeEmail lower-cases and trims an address before storage or lookup.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// alreadyAuthenticated reports whether the request carries a bearer token that
// still resolves to a live session. Register and login reject such requests.
func alreadyAuthenticated(deps *AppDeps, r *http.Request) bool {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return false
	}

	_, customErr := deps.Gateway.Resolve(r.Context(), parts[1])
	return customErr == nil
}

// issueSession mints a fresh token for u and stores it as the single valid
// session token, superseding any previously issued one.
func issueSession(ctx context.Context, deps *AppDeps, u *user.User) (string, *errs.CustomError) {
	payload := &jwt.Payload{
		SubjectID:   u.ID,
		DisplayName: u.Username,
	}

	tokenString, err := jwt.GenerateToken(payload, deps.Config.JWTSecret, deps.Config.SessionTTL)
	if err != nil {
		logx.Error(err, "failed to generate session token", "user_id", u.ID)
		return "", errs.NewError(errs.ErrUnknown)
	}

	if err := deps.Users.UpdateSessionToken(ctx, u.ID, tokenString); err != nil {
		logx.Error(err, "failed to store session token", "user_id", u.ID)
		return "", errs.NewError(errs.ErrUnknown)
	}

	return tokenString, nil
}

// sessionResponse is the payload returned after a successful sign-in/sign-up.
func sessionResponse(deps *AppDeps, token string, u *user.User) map[string]any {
	return map[string]any{
		"token": token,
		"user": map[string]any{
			"id":           u.ID,
			"username":     u.Username,
			"email":        u.Email,
			"avatar":       deps.FullAssetURL(u.AvatarKey),
			"status":       user.StatusOnline,
			"twofaEnabled": u.TwoFAEnabled,
		},
	}
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates a new account and signs it in. Uniqueness of username
// and email is enforced by the database; a constraint violation surfaces as a
// conflict instead of being pre-checked.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if alreadyAuthenticated(deps, r) {
			resp.RespondError(w, r, errs.NewError(errs.ErrAlreadyLoggedIn))
			return
		}

		var input RegisterInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if !usernameRegex.MatchString(input.Username) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidUsername))
			return
		}

		email := normalizeEmail(input.Email)
		if !emailRegex.MatchString(email) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidEmail))
			return
		}

		if !validPassword(input.Password) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidPassword))
			return
		}

		salt, err := hashx.DeriveSalt()
		if err != nil {
			logx.Error(err, "register: salt derivation failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		u, err := deps.Users.Create(r.Context(), input.Username, email, hashx.Hash(input.Password, salt), salt)
		if err != nil {
			switch err {
			case user.ErrDuplicateUsername:
				logx.Warn("registration conflict: username already exists", "username", input.Username)
				resp.RespondError(w, r, errs.NewError(errs.ErrUsernameTaken))
			case user.ErrDuplicateEmail:
				logx.Warn("registration conflict: email already exists")
				resp.RespondError(w, r, errs.NewError(errs.ErrEmailTaken))
			default:
				logx.Error(err, "failed to create user in database")
				resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			}
			return
		}

		token, customErr := issueSession(r.Context(), deps, u)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, sessionResponse(deps, token, u))
	}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and issues a session token. When the
// account has two-factor enabled, a code is emailed instead and the client
// must complete sign-in via the 2FA verification endpoint.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if alreadyAuthenticated(deps, r) {
			resp.RespondError(w, r, errs.NewError(errs.ErrAlreadyLoggedIn))
			return
		}

		var input LoginInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		email := normalizeEmail(input.Email)

		u, err := deps.Users.GetByEmail(r.Context(), email)
		if err != nil {
			logx.Warn("login: user fetch failed", "error", err)
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		if !hashx.Verify(u.PasswordHash, input.Password, u.Salt) {
			logx.Warn("login: password mismatch", "user_id", u.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		if u.TwoFAEnabled {
			code, err := deps.Codes.Issue(u.Email)
			if err != nil {
				logx.Error(err, "login: failed to issue 2fa code", "user_id", u.ID)
				resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
				return
			}

			body := fmt.Sprintf("Your PongArena sign-in code is %s. It expires in 5 minutes.", code)
			if err := deps.Mailer.Send(r.Context(), u.Email, "Your sign-in code", body); err != nil {
				logx.Error(err, "login: failed to send 2fa code", "user_id", u.ID)
				resp.RespondError(w, r, errs.NewError(errs.ErrMailDeliveryFailed))
				return
			}

			resp.RespondSuccess(w, r, map[string]any{
				"twofaRequired": true,
			})
			return
		}

		token, customErr := issueSession(r.Context(), deps, u)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, sessionResponse(deps, token, u))
	}
}

type TwoFAVerifyInput struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// HandleTwoFAVerify completes a two-factor sign-in with the emailed code.
func HandleTwoFAVerify(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input TwoFAVerifyInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		email := normalizeEmail(input.Email)

		u, err := deps.Users.GetByEmail(r.Context(), email)
		if err != nil || !u.TwoFAEnabled {
			resp.RespondError(w, r, errs.NewError(errs.ErrTwoFACodeInvalid))
			return
		}

		if !deps.Codes.Verify(u.Email, input.Code) {
			logx.Warn("2fa: code verification failed", "user_id", u.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrTwoFACodeInvalid))
			return
		}

		token, customErr := issueSession(r.Context(), deps, u)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, sessionResponse(deps, token, u))
	}
}

// HandleLogout clears the stored session token and marks the user offline.
// The presented token stops resolving immediately, so logout is authoritative.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := session.FromContext(r)
		if u == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		if err := deps.Users.ClearSession(r.Context(), u.ID); err != nil {
			logx.Error(err, "logout: failed to clear session", "user_id", u.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

type ForgotPasswordInput struct {
	Email string `json:"email"`
}

// HandleForgotPassword replaces the account password with a generated
// temporary one and emails it. Any live session is cleared, so only the holder
// of the mailbox can sign back in.
func HandleForgotPassword(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input ForgotPasswordInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		email := normalizeEmail(input.Email)

		u, err := deps.Users.GetByEmail(r.Context(), email)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
			return
		}

		tempPassword, err := randx.TempPassword(TempPasswordMinLength, TempPasswordMaxLength)
		if err != nil {
			logx.Error(err, "forgot-password: temp password generation failed", "user_id", u.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		salt, err := hashx.DeriveSalt()
		if err != nil {
			logx.Error(err, "forgot-password: salt derivation failed", "user_id", u.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if err := deps.Users.UpdatePassword(r.Context(), u.ID, hashx.Hash(tempPassword, salt), salt); err != nil {
			logx.Error(err, "forgot-password: failed to update password", "user_id", u.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if err := deps.Users.ClearSession(r.Context(), u.ID); err != nil {
			logx.Error(err, "forgot-password: failed to clear session", "user_id", u.ID)
		}

		body := fmt.Sprintf("Your temporary PongArena password is %s. Sign in and change it right away.", tempPassword)
		if err := deps.Mailer.Send(r.Context(), u.Email, "Password reset", body); err != nil {
			logx.Error(err, "forgot-password: mail delivery failed", "user_id", u.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrMailDeliveryFailed))
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

type ResetPasswordInput struct {
	NewPassword string `json:"newPassword"`
}

// HandleResetPassword sets a new password for an authenticated session without
// asking for the old one. It closes the recovery flow: after signing in with
// the emailed temporary password, the user picks a real one here. The session
// token is rotated along with the credential.
func HandleResetPassword(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := session.FromContext(r)
		if u == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input ResetPasswordInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if !validPassword(input.NewPassword) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidPassword))
			return
		}

		salt, err := hashx.DeriveSalt()
		if err != nil {
			logx.Error(err, "reset-password: salt derivation failed", "user_id", u.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if err := deps.Users.UpdatePassword(r.Context(), u.ID, hashx.Hash(input.NewPassword, salt), salt); err != nil {
			logx.Error(err, "reset-password: failed to update password", "user_id", u.ID)
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
