package randx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTempPasswordLengthRange(t *testing.T) {
	t.Parallel()

	for i := 0; i < 50; i++ {
		pw, err := TempPassword(10, 13)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(pw), 10)
		assert.LessOrEqual(t, len(pw), 13)
	}
}

func TestTempPasswordContainsAllClasses(t *testing.T) {
	t.Parallel()

	for i := 0; i < 50; i++ {
		pw, err := TempPassword(10, 13)
		require.NoError(t, err)

		assert.True(t, strings.ContainsAny(pw, upperChars), "missing uppercase: %q", pw)
		assert.True(t, strings.ContainsAny(pw, lowerChars), "missing lowercase: %q", pw)
		assert.True(t, strings.ContainsAny(pw, digitChars), "missing digit: %q", pw)
		assert.True(t, strings.ContainsAny(pw, passwordSpecials), "missing special: %q", pw)
	}
}

func TestTempPasswordStaysInAlphabet(t *testing.T) {
	t.Parallel()

	pw, err := TempPassword(20, 20)
	require.NoError(t, err)
	require.Len(t, pw, 20)

	for _, c := range pw {
		assert.True(t, strings.ContainsRune(passwordAlphabet, c), "unexpected character %q", c)
	}
}

func TestTempPasswordInvalidRange(t *testing.T) {
	t.Parallel()

	_, err := TempPassword(13, 10)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = TempPassword(3, 10)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestRoomCode(t *testing.T) {
	t.Parallel()

	code, err := RoomCode()
	require.NoError(t, err)

	assert.Len(t, code, RoomCodeLength)
	assert.True(t, IsValidRoomCode(code))
}

func TestIsValidRoomCode(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidRoomCode("Ab3xY9"))
	assert.False(t, IsValidRoomCode(""))
	assert.False(t, IsValidRoomCode("Ab3xY"))
	assert.False(t, IsValidRoomCode("Ab3xY9z"))
	assert.False(t, IsValidRoomCode("Ab3x_9"))
	assert.False(t, IsValidRoomCode("Ab3x 9"))
}

func TestTwoFACode(t *testing.T) {
	t.Parallel()

	code, err := TwoFACode()
	require.NoError(t, err)

	require.Len(t, code, TwoFACodeLength)
	for _, c := range code {
		assert.True(t, c >= '0' && c <= '9', "non-digit %q in code", c)
	}
}

func TestMessageID(t *testing.T) {
	t.Parallel()

	a := MessageID()
	b := MessageID()

	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
