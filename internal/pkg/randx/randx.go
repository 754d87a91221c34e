/*
Package randx provides cryptographically secure random values: game room codes,
temporary recovery passwords, two-factor email codes, and message identifiers.

Every random decision (length selection, character selection, shuffle indices)
draws from crypto/rand.
*/
package randx

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base62Chars is the character set used for room codes (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// RoomCodeLength is the fixed length of generated room codes.
	RoomCodeLength = 6

	// TwoFACodeLength is the fixed length of two-factor email codes.
	TwoFACodeLength = 6

	// passwordSpecials is the restricted special-character set required in
	// temporary passwords.
	passwordSpecials = "#@"

	// passwordAlphabet is the full alphabet temporary passwords draw from
	// (62 alphanumerics plus the two specials).
	passwordAlphabet = Base62Chars + passwordSpecials

	upperChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars = "abcdefghijklmnopqrstuvwxyz"
	digitChars = "0123456789"
)

// ErrInvalidRange is returned by TempPassword when the requested length range
// cannot hold the four mandatory character classes.
var ErrInvalidRange = errors.New("randx: invalid temp password length range")

// randInt returns a uniform random integer in [0, max) from crypto/rand.
func randInt(max int) (int, error) {
	num, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, fmt.Errorf("failed to read random source: %w", err)
	}
	return int(num.Int64()), nil
}

// pickFrom returns one uniformly random character from the given set.
func pickFrom(set string) (byte, error) {
	idx, err := randInt(len(set))
	if err != nil {
		return 0, err
	}
	return set[idx], nil
}

// TempPassword generates a temporary password whose length is uniform in
// [minLen, maxLen]. The result always contains at least one uppercase letter,
// one lowercase letter, one digit, and one of "#@"; remaining positions are
// uniform over the full alphabet. The sequence is shuffled with a Fisher-Yates
// permutation so the guaranteed characters are not positionally predictable.
func TempPassword(minLen, maxLen int) (string, error) {
	if maxLen < minLen || minLen < 4 {
		return "", ErrInvalidRange
	}

	span, err := randInt(maxLen - minLen + 1)
	if err != nil {
		return "", err
	}
	length := minLen + span

	result := make([]byte, 0, length)

	for _, class := range []string{upperChars, lowerChars, digitChars, passwordSpecials} {
		c, err := pickFrom(class)
		if err != nil {
			return "", err
		}
		result = append(result, c)
	}

	for len(result) < length {
		c, err := pickFrom(passwordAlphabet)
		if err != nil {
			return "", err
		}
		result = append(result, c)
	}

	for i := len(result) - 1; i > 0; i-- {
		j, err := randInt(i + 1)
		if err != nil {
			return "", err
		}
		result[i], result[j] = result[j], result[i]
	}

	return string(result), nil
}

// RoomCode generates a Base62 room code of length RoomCodeLength.
func RoomCode() (string, error) {
	result := make([]byte, RoomCodeLength)

	for i := 0; i < RoomCodeLength; i++ {
		c, err := pickFrom(Base62Chars)
		if err != nil {
			return "", fmt.Errorf("failed to generate room code: %w", err)
		}
		result[i] = c
	}

	return string(result), nil
}

// TwoFACode generates a numeric two-factor code of length TwoFACodeLength.
func TwoFACode() (string, error) {
	result := make([]byte, TwoFACodeLength)

	for i := 0; i < TwoFACodeLength; i++ {
		c, err := pickFrom(digitChars)
		if err != nil {
			return "", fmt.Errorf("failed to generate 2fa code: %w", err)
		}
		result[i] = c
	}

	return string(result), nil
}

// MessageID generates a UUID v4 string used as a chat message identifier.
func MessageID() string {
	return uuid.New().String()
}

// IsValidRoomCode reports whether code has the right length and stays within
// the Base62 character set.
func IsValidRoomCode(code string) bool {
	if len(code) != RoomCodeLength {
		return false
	}

	for _, char := range code {
		if !strings.ContainsRune(Base62Chars, char) {
			return false
		}
	}

	return true
}
