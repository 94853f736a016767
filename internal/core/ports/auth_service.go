package ports

import (
	"context"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// AuthService turns a username/password pair into either a signed token
// envelope or a classified failure.
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*domain.AuthResult, error)
}

// PasswordVerifier is the adaptive-hash capability the core treats as a
// black box. It is the single computationally expensive call on the login
// path; throttling sits in front of it, not inside it.
type PasswordVerifier interface {
	Verify(hash, password string) bool
}
