package twofa

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	m := NewManager()
	defer m.Shutdown()

	code, err := m.Issue("player@example.com")
	require.NoError(t, err)
	require.Len(t, code, 6)

	assert.True(t, m.Verify("player@example.com", code))
}

func TestVerifyConsumesCode(t *testing.T) {
	t.Parallel()

	m := NewManager()
	defer m.Shutdown()

	code, err := m.Issue("player@example.com")
	require.NoError(t, err)

	require.True(t, m.Verify("player@example.com", code))
	assert.False(t, m.Verify("player@example.com", code))
}

func TestVerifyUnknownEmail(t *testing.T) {
	t.Parallel()

	m := NewManager()
	defer m.Shutdown()

	assert.False(t, m.Verify("nobody@example.com", "123456"))
}

func TestVerifyWrongCodeBurnsAttempts(t *testing.T) {
	t.Parallel()

	m := NewManager()
	defer m.Shutdown()

	code, err := m.Issue("player@example.com")
	require.NoError(t, err)

	for i := 0; i < MaxAttempts; i++ {
		assert.False(t, m.Verify("player@example.com", "000000x"))
	}

	// Challenge is discarded after MaxAttempts wrong guesses.
	assert.False(t, m.Verify("player@example.com", code))
}

func TestIssueReplacesPendingCode(t *testing.T) {
	t.Parallel()

	m := NewManager()
	defer m.Shutdown()

	first, err := m.Issue("player@example.com")
	require.NoError(t, err)
	second, err := m.Issue("player@example.com")
	require.NoError(t, err)

	if first != second {
		assert.False(t, m.Verify("player@example.com", first))
	}
	assert.True(t, m.Verify("player@example.com", second))
}

func TestVerifyExpiredCode(t *testing.T) {
	t.Parallel()

	m := NewManager()
	defer m.Shutdown()

	code, err := m.Issue("player@example.com")
	require.NoError(t, err)

	m.mu.Lock()
	m.codes["player@example.com"].expiresAt = time.Now().Add(-time.Second)
	m.mu.Unlock()

	assert.False(t, m.Verify("player@example.com", code))
}
