package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// minSecretBytes is 256 bits, the floor for an HS256 signing key.
const minSecretBytes = 32

// TokenService mints, validates and refreshes stateless HS256-signed tokens.
// It holds no per-token state: expiry is enforced at verification time only,
// and there is no revocation. All methods are safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewTokenService validates the signing configuration up front. A secret
// shorter than 256 bits is rejected here, at construction, so a misconfigured
// process dies before it ever serves a request.
func NewTokenService(secret []byte, ttl time.Duration, issuer string) (*TokenService, error) {
	if len(secret) < minSecretBytes {
		return nil, domain.ErrWeakSecret
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	if issuer == "" {
		return nil, errors.New("token issuer must not be empty")
	}
	return &TokenService{
		secret: secret,
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}, nil
}

// Issue mints a signed token for username carrying the given roles, valid
// from now until now + TTL.
func (s *TokenService) Issue(username string, roles []string) (string, error) {
	claims := domain.NewClaims(username, roles, s.issuer, s.now().UTC(), s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses and verifies a compact token. Checks run in a fixed order:
// structural decoding, then signature (constant-time HMAC compare inside
// jwt/v5), then expiry, then issuer. When several conditions fail at once the
// caller sees the error for the earliest check in that order, so a forged
// token never reveals whether it would also have been expired.
func (s *TokenService) Validate(tokenStr string) (*domain.Claims, error) {
	claims := &domain.Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, mapTokenError(err)
	}
	return claims, nil
}

// Refresh re-issues a still-valid token with a fresh issuedAt/expiresAt and
// the same subject and roles, returning the carried-over claims alongside
// the new token. An expired token is refused with ErrTokenExpired; only
// re-authentication from credentials can replace it.
func (s *TokenService) Refresh(tokenStr string) (string, *domain.Claims, error) {
	claims, err := s.Validate(tokenStr)
	if err != nil {
		return "", nil, err
	}
	fresh, err := s.Issue(claims.Subject, claims.Roles)
	if err != nil {
		return "", nil, err
	}
	return fresh, claims, nil
}

// TTL reports the configured token lifetime in seconds.
func (s *TokenService) TTL() int64 {
	return int64(s.ttl / time.Second)
}

func (s *TokenService) keyFunc(*jwt.Token) (interface{}, error) {
	return s.secret, nil
}

// mapTokenError translates jwt/v5 errors into the domain taxonomy. jwt/v5
// joins claim-validation errors, so precedence is re-asserted here:
// malformed, bad signature, missing required claim, expired, issuer.
func mapTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return domain.ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return domain.ErrTokenSignatureInvalid
	case errors.Is(err, domain.ErrTokenMalformed):
		// required-field failure raised by Claims.Validate
		return err
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return fmt.Errorf("%w: wrong issuer", domain.ErrTokenInvalid)
	default:
		return fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
}
