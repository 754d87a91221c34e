package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pongarena/internal/app/db"
)

// Sentinel errors returned by the store. Uniqueness is enforced by database
// constraints; a violation surfaces as one of the duplicate errors below rather
// than through a check-then-insert sequence, so concurrent sign-ups cannot race.
var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already in use")
	ErrDuplicateEmail    = errors.New("email already in use")
)

const userColumns = `id, username, email, password_hash, salt,
	COALESCE(session_token, ''), status, COALESCE(avatar_key, ''),
	twofa_enabled, created_at, updated_at`

// Store is the PostgreSQL-backed user directory.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore returns a Store bound to the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// mapWriteError converts constraint violations into the store's sentinel
// errors and wraps everything else.
func mapWriteError(err error) error {
	if db.IsUniqueViolation(err) {
		switch db.ConstraintName(err) {
		case "users_username_key":
			return ErrDuplicateUsername
		case "users_email_key":
			return ErrDuplicateEmail
		}
	}
	return fmt.Errorf("db error: %w", err)
}

func scanUser(row pgx.Row) (*User, error) {
	u := &User{}
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Salt,
		&u.SessionToken, &u.Status, &u.AvatarKey,
		&u.TwoFAEnabled, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

// Create inserts a new user record and returns it with the assigned id.
// The caller is responsible for hashing the password and lower-casing the email.
func (s *Store) Create(ctx context.Context, username, email, passwordHash, salt string) (*User, error) {
	query := `INSERT INTO users (username, email, password_hash, salt)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	row := s.pool.QueryRow(ctx, query, username, email, passwordHash, salt)

	u := &User{}
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Salt,
		&u.SessionToken, &u.Status, &u.AvatarKey,
		&u.TwoFAEnabled, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return u, nil
}

// GetByID fetches a user by primary key.
func (s *Store) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(s.pool.QueryRow(ctx, query, id))
}

// GetByEmail fetches a user by (lower-cased) email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(s.pool.QueryRow(ctx, query, email))
}

// GetByUsername fetches a user by username.
func (s *Store) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(s.pool.QueryRow(ctx, query, username))
}

// GetBySessionToken fetches the user whose stored session token equals token.
// ErrNotFound means the token was rotated away or cleared by logout, even if
// its signature is still valid.
func (s *Store) GetBySessionToken(ctx context.Context, token string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE session_token = $1`
	return scanUser(s.pool.QueryRow(ctx, query, token))
}

// List returns up to limit users ordered by id.
func (s *Store) List(ctx context.Context, limit int) ([]*User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT $1`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return users, nil
}

// UpdateSessionToken stores a freshly issued token and marks the user online.
// Any previously stored token stops being accepted immediately.
func (s *Store) UpdateSessionToken(ctx context.Context, id int64, token string) error {
	query := `UPDATE users SET session_token = $2, status = $3, updated_at = NOW() WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, id, token, StatusOnline)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearSession nulls the stored token and marks the user logged out, making
// logout authoritative: a bearer holding the old token no longer resolves.
func (s *Store) ClearSession(ctx context.Context, id int64) error {
	query := `UPDATE users SET session_token = NULL, status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, id, StatusLoggedOut)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the digest and salt together.
func (s *Store) UpdatePassword(ctx context.Context, id int64, passwordHash, salt string) error {
	query := `UPDATE users SET password_hash = $2, salt = $3, updated_at = NOW() WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, id, passwordHash, salt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateUsername changes the username; a conflict with another account returns
// ErrDuplicateUsername.
func (s *Store) UpdateUsername(ctx context.Context, id int64, username string) error {
	query := `UPDATE users SET username = $2, updated_at = NOW() WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, id, username)
	if err != nil {
		return mapWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateEmail changes the (lower-cased) email; a conflict with another account
// returns ErrDuplicateEmail.
func (s *Store) UpdateEmail(ctx context.Context, id int64, email string) error {
	query := `UPDATE users SET email = $2, updated_at = NOW() WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, id, email)
	if err != nil {
		return mapWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateAvatar stores the object key of the freshly uploaded avatar.
func (s *Store) UpdateAvatar(ctx context.Context, id int64, avatarKey string) error {
	query := `UPDATE users SET avatar_key = $2, updated_at = NOW() WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, id, avatarKey)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetTwoFAEnabled toggles the email two-factor step for sign-in.
func (s *Store) SetTwoFAEnabled(ctx context.Context, id int64, enabled bool) error {
	query := `UPDATE users SET twofa_enabled = $2, updated_at = NOW() WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, id, enabled)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
