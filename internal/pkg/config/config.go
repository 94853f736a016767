package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	defaultTTLSeconds = 3600  // production: 1 hour
	devTTLSeconds     = 86400 // development profile: 24 hours
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret must be at least 32 bytes; the token service rejects
	// anything shorter at startup.
	JWTSecret  string `env:"JWT_SECRET"`
	TTLSeconds int    `env:"TOKEN_TTL_SECONDS"`
	Issuer     string `env:"TOKEN_ISSUER, default=auth-service"`

	// UserSource selects where the read-only user set is loaded from at
	// startup: "file" (default) or "mongo".
	UserSource string `env:"USER_SOURCE, default=file"`
	UsersFile  string `env:"USERS_FILE,  default=users.json"`

	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=auth_service"`
}

type RedisConfig struct {
	// Addr left empty disables Redis and with it the login rate limiter.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type RateLimitConfig struct {
	MaxAttempts   int `env:"LOGIN_RATE_MAX,    default=10"`
	WindowSeconds int `env:"LOGIN_RATE_WINDOW, default=60"`
}

// Load reads configuration from environment variables using go-envconfig.
// The TTL default depends on the profile: 1 hour in production, 24 hours in
// development.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.TTLSeconds <= 0 {
		if cfg.Env == "development" {
			cfg.TTLSeconds = devTTLSeconds
		} else {
			cfg.TTLSeconds = defaultTTLSeconds
		}
	}
	return &cfg, nil
}

// TTL returns the token lifetime as a duration.
func (c *Config) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// RateLimitWindow returns the login throttle window as a duration.
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimit.WindowSeconds) * time.Second
}
