package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Code is
// the stable machine-readable kind; clients branch on it, not on the text.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps core errors to deterministic HTTP status codes and codes.
//   - Collapses malformed and bad-signature tokens into one external
//     TOKEN_INVALID while logging which check actually failed.
//   - Logs unexpected errors without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials", Code: "INVALID_CREDENTIALS"}
	case errors.Is(err, domain.ErrUserDisabled):
		return http.StatusForbidden, errorResponse{Error: "user disabled", Code: "USER_DISABLED"}
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, errorResponse{Error: "token expired", Code: "TOKEN_EXPIRED"}
	case errors.Is(err, domain.ErrTokenInvalid):
		// The log keeps the malformed/bad-signature distinction; the
		// response must not, to deny forgers an oracle.
		log.Debug().
			Err(err).
			Str("path", c.Path()).
			Msg("token rejected")
		return http.StatusUnauthorized, errorResponse{Error: "token invalid", Code: "TOKEN_INVALID"}
	case errors.Is(err, domain.ErrTokenMissing):
		return http.StatusUnauthorized, errorResponse{Error: "missing bearer token", Code: "TOKEN_MISSING"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error", Code: "INTERNAL_ERROR"}
}
