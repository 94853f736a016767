package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. The two cases are never distinguished, so callers cannot
	// enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserDisabled means the account exists and the caller may even hold
	// the right password, but access is administratively blocked.
	ErrUserDisabled = errors.New("user disabled")

	// ErrTokenExpired is the only end-of-life signal a token has.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid is the externally visible error for any token that is
	// structurally broken or carries a bad signature. The two causes below
	// wrap it so logs can tell them apart while clients cannot.
	ErrTokenInvalid = errors.New("token invalid")

	ErrTokenMalformed        = fmt.Errorf("%w: malformed", ErrTokenInvalid)
	ErrTokenSignatureInvalid = fmt.Errorf("%w: signature mismatch", ErrTokenInvalid)

	// ErrTokenMissing is raised at the HTTP boundary when no bearer token
	// accompanies a request that requires one.
	ErrTokenMissing = errors.New("token missing")

	// ErrWeakSecret aborts startup; it is never surfaced per-request.
	ErrWeakSecret = errors.New("signing secret shorter than 256 bits")
)

// ErrorCode returns the stable machine-readable code for a core error,
// suitable for API responses. Malformed and bad-signature tokens both map to
// TOKEN_INVALID so responses never reveal which check failed.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return "INVALID_CREDENTIALS"
	case errors.Is(err, ErrUserDisabled):
		return "USER_DISABLED"
	case errors.Is(err, ErrTokenExpired):
		return "TOKEN_EXPIRED"
	case errors.Is(err, ErrTokenInvalid):
		return "TOKEN_INVALID"
	case errors.Is(err, ErrTokenMissing):
		return "TOKEN_MISSING"
	case errors.Is(err, ErrWeakSecret):
		return "WEAK_SECRET"
	default:
		return "INTERNAL_ERROR"
	}
}
