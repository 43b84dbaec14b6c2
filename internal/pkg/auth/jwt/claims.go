package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the JWT claims carried by Pulse Hub identity tokens.
type Payload struct {
	// StandardClaims embeds the JWT standard fields such as Exp (Expiration),
	// Iat (Issued At), and Iss (Issuer), used for token validity checks.
	jwt.StandardClaims `json:"standard_claims"`

	// ID is the stable identifier of the user the token was issued to.
	ID string `json:"id"`

	// Nickname is the display name recorded at token issue time. It is a
	// convenience for clients; the user store remains authoritative.
	Nickname string `json:"nickname"`
}
