package testutil

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Xaan1506/NSTrack-Backend/internal/config"
	"github.com/Xaan1506/NSTrack-Backend/internal/db"
	"github.com/Xaan1506/NSTrack-Backend/internal/dependency"
)

const TestPassword = "Password.777"

func NewTestConfig() *config.Config {
	return &config.Config{
		GinMode:                  "test",
		DbName:                   "nstrack_test",
		JwtSecret:                "test-secret",
		JwtAlgorithm:             "HS256",
		AccessTokenExpiryMinutes: 60,
		BcryptCost:               bcrypt.MinCost,
		CorsAllowOrigins:         []string{"*"},
		RateLimitWindowSeconds:   60,
		PresenceWindowSeconds:    120,
		ResetTokenExpiryMinutes:  15,
	}
}

func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// SetupTestDB opens a shared in-memory SQLite database private to the test.
// A single connection serializes writers the way a real store serializes
// single-row updates.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbName := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared&_busy_timeout=5000"

	myDB, err := db.Open(sqlite.Open(dbName), NewTestLogger())
	if err != nil {
		t.Fatalf("failed to init the test db, err: %v", err)
	}

	if sqlDB, err := myDB.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	db.ResetDB(myDB, NewTestLogger())
	t.Cleanup(func() {
		db.CloseDB(myDB, NewTestLogger())
	})

	return myDB
}

// SetupTestRedis starts a miniredis server and enables Redis on cfg.
func SetupTestRedis(t *testing.T, cfg *config.Config) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	cfg.RedisURL = "redis://" + mr.Addr()
	cfg.IsRedisEnabled = true

	client, err := db.GetRedis(cfg.RedisURL, cfg, NewTestLogger())
	if err != nil {
		t.Fatalf("failed to init the test redis, err: %v", err)
	}
	t.Cleanup(func() {
		db.CloseRedis(client, NewTestLogger())
	})

	return mr, client
}

func NewTestDependency(t *testing.T, cfg *config.Config, myDB *gorm.DB, redis *redis.Client) *dependency.Dependency {
	t.Helper()

	if cfg == nil {
		cfg = NewTestConfig()
	}
	if redis != nil {
		cfg.IsRedisEnabled = true
		if cfg.RedisURL == "" {
			cfg.RedisURL = "redis://test"
		}
	}

	dep, err := dependency.NewDependency(cfg, myDB, redis, NewTestLogger())
	if err != nil {
		t.Fatalf("failed to build test dependency, err: %v", err)
	}
	return dep
}

// CreateUser inserts a user directly, bypassing signup.
func CreateUser(t *testing.T, dep *dependency.Dependency, name string, email string) db.User {
	t.Helper()

	hash, err := dep.Hasher.Hash(TestPassword)
	if err != nil {
		t.Fatalf("failed to hash password, err: %v", err)
	}

	user := db.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := gorm.G[db.User](dep.DB).Create(context.Background(), &user); err != nil {
		t.Fatalf("failed to create user, err: %v", err)
	}

	return user
}
