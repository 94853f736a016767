package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/99minutos/auth-service/internal/api/metrics"
	"github.com/99minutos/auth-service/internal/api/middleware"
	"github.com/99minutos/auth-service/internal/core/domain"
	"github.com/99minutos/auth-service/internal/core/ports"
	"github.com/99minutos/auth-service/internal/infrastructure/queue"
)

// Auditor receives audit events off the request path. Satisfied by
// *queue.Dispatcher.
type Auditor interface {
	Enqueue(event queue.AuditEvent)
}

type AuthHandler struct {
	authService ports.AuthService
	tokens      ports.TokenService
	audit       Auditor
}

// NewAuthHandler wires the login/validate/refresh endpoints. audit may be
// nil when no trail is configured.
func NewAuthHandler(authService ports.AuthService, tokens ports.TokenService, audit Auditor) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens, audit: audit}
}

// bcrypt only reads the first 72 bytes of a password, so anything longer is
// rejected up front rather than silently truncated.
type loginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

type validateResponse struct {
	Valid  bool           `json:"valid"`
	Claims *domain.Claims `json:"claims"`
}

// Login authenticates a user and returns a signed bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  domain.AuthResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	timer := prometheus.NewTimer(metrics.LoginDuration)
	result, err := h.authService.Authenticate(c.Request().Context(), req.Username, req.Password)
	timer.ObserveDuration()

	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		h.record(c, "login", req.Username, domain.ErrorCode(err))
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.record(c, "login", req.Username, "success")
	return c.JSON(http.StatusOK, result)
}

// Validate checks the presented bearer token and returns its claims.
//
// @Summary      Validate a token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  validateResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/validate [post]
func (h *AuthHandler) Validate(c echo.Context) error {
	token, err := middleware.BearerToken(c)
	if err != nil {
		metrics.TokenValidationsTotal.WithLabelValues("missing").Inc()
		return err
	}

	claims, err := h.tokens.Validate(token)
	if err != nil {
		metrics.TokenValidationsTotal.WithLabelValues(tokenResult(err)).Inc()
		h.record(c, "validate", "", domain.ErrorCode(err))
		return err
	}

	metrics.TokenValidationsTotal.WithLabelValues("valid").Inc()
	h.record(c, "validate", claims.Subject, "success")
	return c.JSON(http.StatusOK, validateResponse{Valid: true, Claims: claims})
}

// Refresh exchanges a still-valid token for a fresh one. Expired tokens are
// refused; the client must re-authenticate with credentials.
//
// @Summary      Refresh a token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.AuthResult
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	token, err := middleware.BearerToken(c)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("missing").Inc()
		return err
	}

	fresh, claims, err := h.tokens.Refresh(token)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues(tokenResult(err)).Inc()
		h.record(c, "refresh", "", domain.ErrorCode(err))
		return err
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	h.record(c, "refresh", claims.Subject, "success")
	return c.JSON(http.StatusOK, domain.AuthResult{
		Token:     fresh,
		TokenType: domain.TokenTypeBearer,
		ExpiresIn: h.tokens.TTL(),
	})
}

// Me returns the claims of the authenticated caller. Requires the Auth
// middleware.
//
// @Summary      Current token claims
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Claims
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, claims)
}

func (h *AuthHandler) record(c echo.Context, action, username, outcome string) {
	if h.audit == nil {
		return
	}
	h.audit.Enqueue(queue.AuditEvent{
		Action:   action,
		Username: username,
		Outcome:  strings.ToLower(outcome),
		ClientIP: c.RealIP(),
		At:       time.Now().UTC(),
	})
}

func loginResult(err error) string {
	switch domain.ErrorCode(err) {
	case "INVALID_CREDENTIALS":
		return "invalid_credentials"
	case "USER_DISABLED":
		return "user_disabled"
	default:
		return "error"
	}
}

func tokenResult(err error) string {
	switch domain.ErrorCode(err) {
	case "TOKEN_EXPIRED":
		return "expired"
	case "TOKEN_INVALID":
		return "invalid"
	case "TOKEN_MISSING":
		return "missing"
	default:
		return "error"
	}
}
