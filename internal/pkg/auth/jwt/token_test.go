package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	t.Parallel()

	payload := &Payload{SubjectID: 42, DisplayName: "paddle_master"}

	token, err := GenerateToken(payload, "test-secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := ParseToken(token, "test-secret")
	require.NoError(t, err)

	assert.Equal(t, int64(42), parsed.SubjectID)
	assert.Equal(t, "paddle_master", parsed.DisplayName)
	assert.Equal(t, TokenIssuer, parsed.Issuer)
	assert.Greater(t, parsed.ExpiresAt, time.Now().Unix())
}

func TestParseTokenWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken(&Payload{SubjectID: 1}, "right-secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "wrong-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenExpired(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken(&Payload{SubjectID: 1}, "test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, "test-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenMalformed(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("not.a.jwt", "test-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken("", "test-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenTampered(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken(&Payload{SubjectID: 7}, "test-secret", time.Hour)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"

	_, err = ParseToken(tampered, "test-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
