/*
Package hashx implements salted password hashing for the user directory.

Digests are derived with PBKDF2-SHA512 (fixed work factor) and stored hex-encoded
next to a per-user random salt. Verification recomputes the digest and compares in
constant time.
*/
package hashx

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltBytes is the length of the raw random salt (32 hex chars once encoded).
	SaltBytes = 16

	// Iterations is the fixed PBKDF2 work factor.
	Iterations = 1000

	// DigestBytes is the raw derived key length (128 hex chars once encoded).
	DigestBytes = 64
)

// DeriveSalt returns a fresh cryptographically random salt, hex-encoded.
func DeriveSalt() (string, error) {
	raw := make([]byte, SaltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	return hex.EncodeToString(raw), nil
}

// Hash derives the hex-encoded digest for the given password and salt.
// The same inputs always produce the same output.
func Hash(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), Iterations, DigestBytes, sha512.New)
	return hex.EncodeToString(key)
}

// Verify reports whether candidate hashes to storedDigest under the given salt.
// The comparison is constant-time to avoid a timing side channel.
func Verify(storedDigest, candidate, salt string) bool {
	computed := Hash(candidate, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedDigest)) == 1
}
