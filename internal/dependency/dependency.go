package dependency

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Xaan1506/NSTrack-Backend/internal/config"
	"github.com/Xaan1506/NSTrack-Backend/internal/db"
	"github.com/Xaan1506/NSTrack-Backend/internal/util/jwt"
	"github.com/Xaan1506/NSTrack-Backend/internal/util/password"
)

// Dependency is the process-wide state, built once at startup and passed to
// every service.
type Dependency struct {
	Cfg    *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Logger *slog.Logger
	Tokens *jwt.TokenManager
	Hasher *password.Hasher
}

func NewDependency(cfg *config.Config, db *gorm.DB, redis *redis.Client, logger *slog.Logger) (*Dependency, error) {
	tokens, err := jwt.NewTokenManagerFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to init token manager: %w", err)
	}

	hasher, err := password.NewHasher(cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to init password hasher: %w", err)
	}

	return &Dependency{
		Cfg:    cfg,
		DB:     db,
		Redis:  redis,
		Logger: logger,
		Tokens: tokens,
		Hasher: hasher,
	}, nil
}

func InitDependency(cfg *config.Config, logger *slog.Logger) (*Dependency, error) {
	myDB, err := db.GetDB(cfg.DatabaseURL, cfg.DbName, logger)
	if err != nil {
		return nil, err
	}

	redis, err := db.GetRedis(cfg.RedisURL, cfg, logger)
	if err != nil {
		db.CloseDB(myDB, logger)
		return nil, err
	}

	dep, err := NewDependency(cfg, myDB, redis, logger)
	if err != nil {
		db.CloseDB(myDB, logger)
		db.CloseRedis(redis, logger)
		return nil, err
	}

	return dep, nil
}

func CloseDependency(dep *Dependency) {
	db.CloseDB(dep.DB, dep.Logger)
	db.CloseRedis(dep.Redis, dep.Logger)
}
