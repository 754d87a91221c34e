/*
Package user implements the user directory: identity and credential records and
the PostgreSQL store that owns them.

A user carries exactly one valid session token at a time. Issuing a new token
overwrites the previous one, and logout clears it, so a bearer token is only
accepted while it matches the stored value.
*/
package user

import "time"

// Status values for the online flag.
const (
	// StatusLoggedOut marks a user with no active session.
	StatusLoggedOut int16 = 0

	// StatusOnline marks a user with an active session.
	StatusOnline int16 = 1
)

// User is the identity and credential record of one account.
type User struct {
	// ID is the unique identifier assigned on creation, immutable.
	ID int64

	// Username is unique among all accounts.
	Username string

	// Email is unique among all accounts, stored lower-cased.
	Email string

	// PasswordHash and Salt always change together.
	PasswordHash string
	Salt         string

	// SessionToken is the single currently-valid bearer token, or "" when
	// the user is logged out.
	SessionToken string

	// Status is StatusOnline while a session is active.
	Status int16

	// AvatarKey is the object storage key of the avatar, or "".
	AvatarKey string

	// TwoFAEnabled gates the email code step on sign-in.
	TwoFAEnabled bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicUser is the projection of a User exposed to other clients.
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
	Status   int16  `json:"status"`
}

// Public returns the client-safe projection of u. The avatar key is exposed
// as-is; handlers expand it to a full URL.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Avatar:   u.AvatarKey,
		Status:   u.Status,
	}
}
