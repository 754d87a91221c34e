package user

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapWriteErrorEmailConflict(t *testing.T) {
	t.Parallel()

	err := mapWriteError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestMapWriteErrorUsernameConflict(t *testing.T) {
	t.Parallel()

	err := mapWriteError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestMapWriteErrorUnrelatedConstraint(t *testing.T) {
	t.Parallel()

	// A unique violation on some other table's constraint must not be
	// mislabelled as a username or email conflict.
	err := mapWriteError(&pgconn.PgError{Code: "23505", ConstraintName: "matches_pkey"})
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
	assert.NotErrorIs(t, err, ErrDuplicateUsername)
}

func TestMapWriteErrorNonUniqueViolation(t *testing.T) {
	t.Parallel()

	err := mapWriteError(&pgconn.PgError{Code: "23503", ConstraintName: "messages_sender_id_fkey"})
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
	assert.NotErrorIs(t, err, ErrDuplicateUsername)
}

func TestMapWriteErrorWrapsPlainErrors(t *testing.T) {
	t.Parallel()

	plain := errors.New("connection reset")
	assert.ErrorIs(t, mapWriteError(plain), plain)
}
