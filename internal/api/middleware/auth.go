package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/auth-service/internal/core/domain"
	"github.com/99minutos/auth-service/internal/core/ports"
)

// Context keys populated by Auth.
const (
	CtxUsername = "username"
	CtxRoles    = "roles"
	CtxClaims   = "claims"
)

// BearerToken extracts the bearer token from the Authorization header.
// Returns ErrTokenMissing when the header is absent or not a bearer scheme.
func BearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", domain.ErrTokenMissing
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", domain.ErrTokenMissing
	}
	return parts[1], nil
}

// Auth validates the bearer token and injects its claims into the request
// context. Errors fall through to the central error handler, which collapses
// malformed and bad-signature tokens into one external code.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := BearerToken(c)
			if err != nil {
				return err
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				return err
			}

			c.Set(CtxUsername, claims.Subject)
			c.Set(CtxRoles, claims.Roles)
			c.Set(CtxClaims, claims)

			return next(c)
		}
	}
}
