package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	libjwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	GinMode  string `env:"GIN_MODE" envDefault:"debug"`
	Port     string `env:"PORT" envDefault:"8000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DatabaseURL string `env:"DATABASE_URL"`
	DbName      string `env:"DB_NAME" envDefault:"nstrack"`

	JwtSecret                string `env:"JWT_SECRET"`
	JwtAlgorithm             string `env:"ALGORITHM" envDefault:"HS256"`
	AccessTokenExpiryMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"60"`
	BcryptCost               int    `env:"BCRYPT_COST" envDefault:"10"`

	RedisURL       string `env:"REDIS_URL"`
	IsRedisEnabled bool

	CorsAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"*"`

	RateLimitRequests      int `env:"RATE_LIMIT_REQUESTS" envDefault:"0"`
	RateLimitWindowSeconds int `env:"RATE_LIMIT_WINDOW_SECONDS" envDefault:"60"`

	PresenceWindowSeconds   int `env:"PRESENCE_WINDOW_SECONDS" envDefault:"120"`
	ResetTokenExpiryMinutes int `env:"RESET_TOKEN_EXPIRE_MINUTES" envDefault:"15"`
}

var hmacAlgorithms = map[string]struct{}{
	libjwt.SigningMethodHS256.Alg(): {},
	libjwt.SigningMethodHS384.Alg(): {},
	libjwt.SigningMethodHS512.Alg(): {},
}

func LoadConfigFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.IsRedisEnabled = cfg.RedisURL != ""

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.JwtSecret == "" {
		errs = append(errs, errors.New("environment variable JWT_SECRET is required but not set"))
	}
	if _, ok := hmacAlgorithms[c.JwtAlgorithm]; !ok {
		errs = append(errs, fmt.Errorf("unsupported signing algorithm %q, expected one of HS256, HS384, HS512", c.JwtAlgorithm))
	}
	if c.AccessTokenExpiryMinutes <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be within [%d, %d]", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.RateLimitRequests < 0 || c.RateLimitWindowSeconds <= 0 {
		errs = append(errs, errors.New("rate limiter settings must not be negative"))
	}
	if c.PresenceWindowSeconds <= 0 || c.ResetTokenExpiryMinutes <= 0 {
		errs = append(errs, errors.New("presence and reset token windows must be positive"))
	}

	return errors.Join(errs...)
}

func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpiryMinutes) * time.Minute
}

func (c *Config) PresenceWindow() time.Duration {
	return time.Duration(c.PresenceWindowSeconds) * time.Second
}

func (c *Config) ResetTokenTTL() time.Duration {
	return time.Duration(c.ResetTokenExpiryMinutes) * time.Minute
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

// SlogLevel maps LOG_LEVEL to a slog level, falling back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
