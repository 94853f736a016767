package domain

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: who the token was issued for, when it was
// minted, when it dies, and which roles it grants. Claims carry no password
// material and no secrets. Unknown fields in an incoming token are ignored
// for forward compatibility.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// NewClaims builds the claim set for a freshly issued token.
func NewClaims(username string, roles []string, issuer string, now time.Time, ttl time.Duration) *Claims {
	return &Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// Validate enforces claim completeness on decode. It is invoked by the
// jwt/v5 parser (ClaimsValidator hook) after signature and registered-claim
// checks; a token missing any required field is treated as malformed.
func (c *Claims) Validate() error {
	switch {
	case c.Subject == "":
		return fmt.Errorf("%w: missing sub", ErrTokenMalformed)
	case c.IssuedAt == nil:
		return fmt.Errorf("%w: missing iat", ErrTokenMalformed)
	case c.ExpiresAt == nil:
		return fmt.Errorf("%w: missing exp", ErrTokenMalformed)
	case c.Issuer == "":
		return fmt.Errorf("%w: missing iss", ErrTokenMalformed)
	}
	return nil
}
