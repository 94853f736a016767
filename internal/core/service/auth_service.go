package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/99minutos/auth-service/internal/core/domain"
	"github.com/99minutos/auth-service/internal/core/ports"
)

// AuthService resolves credentials against the injected read-only user set
// and mints tokens for the accounts that pass. It owns failure
// classification for the login path; it never stores anything.
type AuthService struct {
	users    ports.UserRepository
	verifier ports.PasswordVerifier
	tokens   ports.TokenService
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, verifier ports.PasswordVerifier, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, verifier: verifier, tokens: tokens, log: log}
}

// Authenticate checks username/password and returns a signed token envelope.
// An unknown username and a wrong password both yield ErrInvalidCredentials,
// indistinguishable to the caller. A disabled account is reported as
// ErrUserDisabled before the password is ever checked. Log lines name the
// username only, never the password or the issued token.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, ok := s.users.FindByUsername(ctx, username)
	if !ok {
		s.log.Info().Str("username", username).Msg("login failed: unknown user")
		return nil, domain.ErrInvalidCredentials
	}

	if !user.Enabled {
		s.log.Info().Str("username", username).Msg("login refused: account disabled")
		return nil, domain.ErrUserDisabled
	}

	if !s.verifier.Verify(user.PasswordHash, password) {
		s.log.Info().Str("username", username).Msg("login failed: password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username, user.Roles)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", username).Msg("login succeeded")
	return &domain.AuthResult{
		Token:     token,
		TokenType: domain.TokenTypeBearer,
		ExpiresIn: s.tokens.TTL(),
	}, nil
}
