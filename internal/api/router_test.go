package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/auth-service/internal/core/domain"
	"github.com/99minutos/auth-service/internal/core/service"
	"github.com/99minutos/auth-service/internal/infrastructure/userstore"
	"github.com/99minutos/auth-service/internal/pkg/password"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func testUsers(t *testing.T) *userstore.Memory {
	t.Helper()
	hash := func(pw string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("bcrypt: %v", err)
		}
		return string(h)
	}
	return userstore.NewMemory([]domain.User{
		{Username: "testuser", PasswordHash: hash("password"), Roles: []string{"USER"}, Enabled: true},
		{Username: "admin", PasswordHash: hash("adminpass"), Roles: []string{"USER", "ADMIN"}, Enabled: true},
		{Username: "olduser", PasswordHash: hash("password"), Roles: []string{"USER"}, Enabled: false},
	})
}

func newTestRouter(t *testing.T, ttl time.Duration) *echo.Echo {
	t.Helper()
	tokens, err := service.NewTokenService(testSecret, ttl, "auth-service")
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}
	users := testUsers(t)
	auth := service.NewAuthService(users, password.Bcrypt{}, tokens, zerolog.Nop())

	return NewRouter(Deps{
		AuthService:  auth,
		TokenService: tokens,
		Users:        users,
		Log:          zerolog.Nop(),
	})
}

func doJSON(e *echo.Echo, method, path, body, bearer string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, e *echo.Echo, username, pw string) domain.AuthResult {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/api/auth/login",
		`{"username":"`+username+`","password":"`+pw+`"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", username, rec.Code, rec.Body)
	}
	var out domain.AuthResult
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return body.Code
}

func TestRouter_LoginValidateFlow(t *testing.T) {
	e := newTestRouter(t, time.Hour)

	result := login(t, e, "testuser", "password")
	if result.TokenType != "Bearer" || result.ExpiresIn != 3600 {
		t.Fatalf("unexpected envelope: %+v", result)
	}

	rec := doJSON(e, http.MethodPost, "/api/auth/validate", "", result.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("validate: expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var body struct {
		Valid  bool `json:"valid"`
		Claims struct {
			Sub   string   `json:"sub"`
			Iss   string   `json:"iss"`
			Roles []string `json:"roles"`
		} `json:"claims"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode validate response: %v", err)
	}
	if !body.Valid || body.Claims.Sub != "testuser" || body.Claims.Iss != "auth-service" {
		t.Fatalf("unexpected claims: %+v", body)
	}
	if len(body.Claims.Roles) != 1 || body.Claims.Roles[0] != "USER" {
		t.Fatalf("expected roles [USER], got %v", body.Claims.Roles)
	}
}

func TestRouter_LoginFailures(t *testing.T) {
	e := newTestRouter(t, time.Hour)

	// Unknown user and wrong password must be externally identical.
	recUnknown := doJSON(e, http.MethodPost, "/api/auth/login",
		`{"username":"nonexistent","password":"anything"}`, "")
	recWrong := doJSON(e, http.MethodPost, "/api/auth/login",
		`{"username":"testuser","password":"wrongpassword"}`, "")
	for _, rec := range []*httptest.ResponseRecorder{recUnknown, recWrong} {
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "INVALID_CREDENTIALS" {
			t.Fatalf("expected INVALID_CREDENTIALS, got %s", code)
		}
	}
	if recUnknown.Body.String() != recWrong.Body.String() {
		t.Fatalf("bodies must be indistinguishable:\n%s\n%s", recUnknown.Body, recWrong.Body)
	}

	// Disabled account with the right password is more specific.
	rec := doJSON(e, http.MethodPost, "/api/auth/login",
		`{"username":"olduser","password":"password"}`, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "USER_DISABLED" {
		t.Fatalf("expected USER_DISABLED, got %s", code)
	}

	// Missing fields are a 400 before the core is involved.
	rec = doJSON(e, http.MethodPost, "/api/auth/login", `{"username":"testuser"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRouter_TokenFailureCodes(t *testing.T) {
	e := newTestRouter(t, time.Hour)

	rec := doJSON(e, http.MethodPost, "/api/auth/validate", "", "")
	if rec.Code != http.StatusUnauthorized || errorCode(t, rec) != "TOKEN_MISSING" {
		t.Fatalf("expected 401 TOKEN_MISSING, got %d %s", rec.Code, rec.Body)
	}

	result := login(t, e, "testuser", "password")
	repl := "A"
	if strings.HasSuffix(result.Token, "A") {
		repl = "B"
	}
	tampered := result.Token[:len(result.Token)-1] + repl
	rec = doJSON(e, http.MethodPost, "/api/auth/validate", "", tampered)
	if rec.Code != http.StatusUnauthorized || errorCode(t, rec) != "TOKEN_INVALID" {
		t.Fatalf("expected 401 TOKEN_INVALID, got %d %s", rec.Code, rec.Body)
	}

	rec = doJSON(e, http.MethodPost, "/api/auth/validate", "", "not-a-token")
	if rec.Code != http.StatusUnauthorized || errorCode(t, rec) != "TOKEN_INVALID" {
		t.Fatalf("expected 401 TOKEN_INVALID for malformed, got %d %s", rec.Code, rec.Body)
	}
}

func TestRouter_ExpiredTokenFlow(t *testing.T) {
	// A nanosecond TTL truncates to an expiry at or before issuance, so
	// every token from this router is already dead.
	e := newTestRouter(t, time.Nanosecond)

	result := login(t, e, "testuser", "password")

	rec := doJSON(e, http.MethodPost, "/api/auth/validate", "", result.Token)
	if rec.Code != http.StatusUnauthorized || errorCode(t, rec) != "TOKEN_EXPIRED" {
		t.Fatalf("expected 401 TOKEN_EXPIRED, got %d %s", rec.Code, rec.Body)
	}

	// Refresh never resurrects an expired token.
	rec = doJSON(e, http.MethodPost, "/api/auth/refresh", "", result.Token)
	if rec.Code != http.StatusUnauthorized || errorCode(t, rec) != "TOKEN_EXPIRED" {
		t.Fatalf("expected refresh refusal with TOKEN_EXPIRED, got %d %s", rec.Code, rec.Body)
	}
}

func TestRouter_RefreshFlow(t *testing.T) {
	e := newTestRouter(t, time.Hour)

	result := login(t, e, "testuser", "password")
	rec := doJSON(e, http.MethodPost, "/api/auth/refresh", "", result.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh: expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var fresh domain.AuthResult
	if err := json.Unmarshal(rec.Body.Bytes(), &fresh); err != nil {
		t.Fatalf("decode refresh response: %v", err)
	}
	if fresh.Token == "" || fresh.TokenType != "Bearer" {
		t.Fatalf("unexpected envelope: %+v", fresh)
	}

	rec = doJSON(e, http.MethodPost, "/api/auth/validate", "", fresh.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("refreshed token rejected: %d %s", rec.Code, rec.Body)
	}
}

func TestRouter_ProtectedRoutes(t *testing.T) {
	e := newTestRouter(t, time.Hour)

	// No token at all.
	rec := doJSON(e, http.MethodGet, "/api/users", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	// USER role is not enough for the admin listing.
	user := login(t, e, "testuser", "password")
	rec = doJSON(e, http.MethodGet, "/api/users", "", user.Token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for USER role, got %d", rec.Code)
	}

	// ADMIN passes and the listing never contains hashes.
	admin := login(t, e, "admin", "adminpass")
	rec = doJSON(e, http.MethodGet, "/api/users", "", admin.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for ADMIN, got %d: %s", rec.Code, rec.Body)
	}
	if strings.Contains(rec.Body.String(), "$2a$") || strings.Contains(rec.Body.String(), "password_hash") {
		t.Fatalf("user listing leaked password material: %s", rec.Body)
	}

	// /api/auth/me echoes the caller's claims.
	rec = doJSON(e, http.MethodGet, "/api/auth/me", "", user.Token)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"testuser"`) {
		t.Fatalf("unexpected me response: %d %s", rec.Code, rec.Body)
	}
}

func TestRouter_Health(t *testing.T) {
	e := newTestRouter(t, time.Hour)

	rec := doJSON(e, http.MethodGet, "/api/auth/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// No backing stores configured: readiness reports ok with no deps.
	rec = doJSON(e, http.MethodGet, "/api/auth/health/ready", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
