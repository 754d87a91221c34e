package hashx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashRoundtrip(t *testing.T) {
	t.Parallel()

	salt, err := DeriveSalt()
	require.NoError(t, err)

	digest := Hash("correct horse battery staple", salt)

	assert.True(t, Verify(digest, "correct horse battery staple", salt))
	assert.False(t, Verify(digest, "wrong password", salt))
}

func TestHashIsDeterministic(t *testing.T) {
	t.Parallel()

	salt, err := DeriveSalt()
	require.NoError(t, err)

	assert.Equal(t, Hash("secret", salt), Hash("secret", salt))
}

func TestHashDependsOnSalt(t *testing.T) {
	t.Parallel()

	saltA, err := DeriveSalt()
	require.NoError(t, err)
	saltB, err := DeriveSalt()
	require.NoError(t, err)
	require.NotEqual(t, saltA, saltB)

	assert.NotEqual(t, Hash("secret", saltA), Hash("secret", saltB))
}

func TestDeriveSaltLength(t *testing.T) {
	t.Parallel()

	salt, err := DeriveSalt()
	require.NoError(t, err)

	assert.Len(t, salt, SaltBytes*2)
}

func TestHashLength(t *testing.T) {
	t.Parallel()

	salt, err := DeriveSalt()
	require.NoError(t, err)

	assert.Len(t, Hash("anything", salt), DigestBytes*2)
}

func TestVerifyRejectsTamperedDigest(t *testing.T) {
	t.Parallel()

	salt, err := DeriveSalt()
	require.NoError(t, err)

	digest := Hash("secret", salt)

	flipped := byte('0')
	if digest[0] == '0' {
		flipped = '1'
	}
	tampered := string(flipped) + digest[1:]

	assert.False(t, Verify(tampered, "secret", salt))
}
