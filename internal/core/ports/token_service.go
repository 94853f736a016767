package ports

import "github.com/99minutos/auth-service/internal/core/domain"

// TokenService owns the token lifecycle. All three operations are pure CPU
// over in-memory state, so none of them takes a context.
type TokenService interface {
	// Issue mints a signed token for the given subject and roles.
	Issue(username string, roles []string) (string, error)
	// Validate checks structure, signature, expiry and issuer, in that
	// order, and returns the embedded claims on success.
	Validate(token string) (*domain.Claims, error)
	// Refresh re-issues a still-valid token with a fresh lifetime and
	// returns the claims carried over into it. An expired token is
	// refused: refresh extends live trust, it never resurrects lapsed
	// trust.
	Refresh(token string) (string, *domain.Claims, error)
	// TTL reports the configured token lifetime.
	TTL() int64
}
