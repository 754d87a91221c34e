/*
Package jwt implements the session token issuer and verifier.

Tokens are HS256-signed and carry the subject id, display name, and issued-at
time. Expiry is always explicit: the signing duration is injected by the caller
from configuration, never defaulted here.
*/
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// TokenIssuer identifies the issuer of every PongArena session token.
const TokenIssuer = "PongArena-Server"

// ErrInvalidToken is returned by ParseToken for malformed, unsigned, tampered,
// or expired tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

// GenerateToken signs a new token string for the given payload. The standard
// claims (expiry, issued-at, issuer) are filled in here from the provided
// duration.
func GenerateToken(payload *Payload, secretKey string, duration time.Duration) (string, error) {
	now := time.Now()

	payload.StandardClaims = jwt.StandardClaims{
		ExpiresAt: now.Add(duration).Unix(),
		IssuedAt:  now.Unix(),
		Issuer:    TokenIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)

	return token.SignedString([]byte(secretKey))
}

// ParseToken validates the signature and expiry of tokenString and returns the
// embedded payload. Any failure, including an unexpected signing method, maps
// to ErrInvalidToken; malformed input never panics.
func ParseToken(tokenString string, secretKey string) (*Payload, error) {
	claims := &Payload{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
