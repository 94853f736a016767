package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/auth-service/internal/api"
	apimiddleware "github.com/99minutos/auth-service/internal/api/middleware"
	"github.com/99minutos/auth-service/internal/core/service"
	"github.com/99minutos/auth-service/internal/infrastructure/db/mongo"
	"github.com/99minutos/auth-service/internal/infrastructure/db/redis"
	"github.com/99minutos/auth-service/internal/infrastructure/queue"
	"github.com/99minutos/auth-service/internal/infrastructure/userstore"
	"github.com/99minutos/auth-service/internal/pkg/config"
	"github.com/99minutos/auth-service/internal/pkg/password"
	"github.com/99minutos/auth-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// A weak secret or bad TTL must kill the process here, before any
	// request is served.
	tokenService, err := service.NewTokenService([]byte(cfg.JWTSecret), cfg.TTL(), cfg.Issuer)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid token configuration")
	}

	// --- User set, loaded once ---
	var (
		users   *userstore.Memory
		mongoDB *mongodriver.Database
	)
	switch cfg.UserSource {
	case "mongo":
		client, db, err := mongo.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongodb")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		mongoDB = db

		loaded, err := mongo.LoadUsers(ctx, db)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load user set from mongodb")
		}
		users = userstore.NewMemory(loaded)
	default:
		users, err = userstore.LoadFile(cfg.UsersFile)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load user set from file")
		}
	}
	log.Info().Int("users", users.Len()).Str("source", cfg.UserSource).Msg("user set loaded")

	// --- Optional Redis-backed login throttle ---
	var (
		rdb     *goredis.Client
		limiter apimiddleware.AttemptLimiter
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer func() { _ = rdb.Close() }()
		limiter = redis.NewLoginLimiter(rdb, cfg.RateLimit.MaxAttempts, cfg.RateLimitWindow())
	}

	// --- Audit trail ---
	audit := queue.NewDispatcher(0, queue.NewLogSink(log), log)
	audit.Start(ctx)

	authService := service.NewAuthService(users, password.Bcrypt{}, tokenService, log)

	e := api.NewRouter(api.Deps{
		AuthService:  authService,
		TokenService: tokenService,
		Users:        users,
		Limiter:      limiter,
		Audit:        audit,
		Mongo:        mongoDB,
		Redis:        rdb,
		Log:          log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("auth service started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
