package config

import (
	"log/slog"
	"testing"
	"time"
)

func assertError(t *testing.T, err error, name string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error for %s", name)
	}
}

func assertNoError(t *testing.T, err error, name string) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error for %s: %v", name, err)
	}
}

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "jwt")
	t.Setenv("REDIS_URL", "")

	cfg, err := LoadConfigFromEnv()
	assertNoError(t, err, "defaults")

	if cfg.JwtAlgorithm != "HS256" {
		t.Fatalf("expected HS256, got %q", cfg.JwtAlgorithm)
	}
	if cfg.AccessTokenTTL() != 60*time.Minute {
		t.Fatalf("expected 60 minute TTL, got %v", cfg.AccessTokenTTL())
	}
	if cfg.DbName != "nstrack" {
		t.Fatalf("expected default db name, got %q", cfg.DbName)
	}
	if cfg.IsRedisEnabled {
		t.Fatalf("expected redis to be disabled without REDIS_URL")
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("expected bcrypt cost 10, got %d", cfg.BcryptCost)
	}
	if len(cfg.CorsAllowOrigins) != 1 || cfg.CorsAllowOrigins[0] != "*" {
		t.Fatalf("expected wildcard cors origin, got %v", cfg.CorsAllowOrigins)
	}
}

func TestLoadConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "jwt")
	t.Setenv("ALGORITHM", "HS512")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test,http://b.test")

	cfg, err := LoadConfigFromEnv()
	assertNoError(t, err, "overrides")

	if cfg.JwtAlgorithm != "HS512" {
		t.Fatalf("expected HS512, got %q", cfg.JwtAlgorithm)
	}
	if cfg.AccessTokenTTL() != 5*time.Minute {
		t.Fatalf("expected 5 minute TTL, got %v", cfg.AccessTokenTTL())
	}
	if !cfg.IsRedisEnabled {
		t.Fatalf("expected redis to be enabled")
	}
	if len(cfg.CorsAllowOrigins) != 2 {
		t.Fatalf("expected two origins, got %v", cfg.CorsAllowOrigins)
	}
}

func TestLoadConfigFromEnv_ErrsOnInvalidSettings(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := LoadConfigFromEnv()
	assertError(t, err, "JWT_SECRET unset")

	t.Setenv("JWT_SECRET", "jwt")
	t.Setenv("ALGORITHM", "RS256")
	_, err = LoadConfigFromEnv()
	assertError(t, err, "non-HMAC algorithm")

	t.Setenv("ALGORITHM", "HS256")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "0")
	_, err = LoadConfigFromEnv()
	assertError(t, err, "zero TTL")

	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "60")
	t.Setenv("BCRYPT_COST", "99")
	_, err = LoadConfigFromEnv()
	assertError(t, err, "bcrypt cost out of range")

	t.Setenv("BCRYPT_COST", "not-a-number")
	_, err = LoadConfigFromEnv()
	assertError(t, err, "bcrypt cost not an int")
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"unknown": slog.LevelInfo,
	}

	for in, want := range cases {
		cfg := &Config{LogLevel: in}
		if got := cfg.SlogLevel(); got != want {
			t.Fatalf("level %q: expected %v, got %v", in, want, got)
		}
	}
}
