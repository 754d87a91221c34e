package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the claims carried by a PongArena session token.
// It embeds the standard claims required for validity checks and adds the
// custom claims used to identify the session owner.
type Payload struct {
	// StandardClaims embeds the JWT standard fields: Exp (Expiration),
	// Iat (Issued At), and Iss (Issuer).
	jwt.StandardClaims `json:"standard_claims"`

	// SubjectID is the user directory id of the session owner.
	SubjectID int64 `json:"sub_id"`

	// DisplayName is the username at issue time, carried for display only.
	// Authoritative profile data always comes from the user directory.
	DisplayName string `json:"display_name"`
}
