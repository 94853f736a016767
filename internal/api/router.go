package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/99minutos/auth-service/docs"
	"github.com/99minutos/auth-service/internal/api/handler"
	"github.com/99minutos/auth-service/internal/api/middleware"
	"github.com/99minutos/auth-service/internal/core/ports"
)

// Deps carries everything the router needs. Limiter, Audit, Mongo and Redis
// are optional; nil disables the corresponding feature.
type Deps struct {
	AuthService  ports.AuthService
	TokenService ports.TokenService
	Users        ports.UserRepository
	Limiter      middleware.AttemptLimiter
	Audit        handler.Auditor
	Mongo        *mongo.Database
	Redis        *redis.Client
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// Request metrics get their own registry so building several routers
	// (tests) never double-registers; /metrics exposes it merged with the
	// default registry carrying the auth counters.
	promReg := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "auth",
		Registerer: promReg,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService, deps.TokenService, deps.Audit)
	userHandler := handler.NewUserHandler(deps.Users)
	authMW := middleware.Auth(deps.TokenService)

	// --- Auth routes ---
	var loginMW []echo.MiddlewareFunc
	if deps.Limiter != nil {
		loginMW = append(loginMW, middleware.RateLimit(deps.Limiter, deps.Log))
	}
	e.POST("/api/auth/login", authHandler.Login, loginMW...)
	e.POST("/api/auth/validate", authHandler.Validate)
	e.POST("/api/auth/refresh", authHandler.Refresh)
	e.GET("/api/auth/me", authHandler.Me, authMW)

	// --- Protected admin surface ---
	e.GET("/api/users", userHandler.List, authMW, middleware.RBAC("ADMIN"))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/api/auth/health", healthHandler.Liveness)
	e.GET("/api/auth/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{promReg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
