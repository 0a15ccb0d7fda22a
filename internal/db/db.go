package db

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Dialector picks the gorm driver for a connection string: postgres URLs use
// the Postgres driver, anything else is treated as a SQLite DSN. An empty
// address falls back to data/<dbName>.sqlite.
func Dialector(address string, dbName string) (gorm.Dialector, error) {
	if strings.HasPrefix(address, "postgres://") || strings.HasPrefix(address, "postgresql://") {
		dsn, err := withDatabaseName(address, dbName)
		if err != nil {
			return nil, err
		}
		return postgres.Open(dsn), nil
	}

	if address == "" {
		address = filepath.Join("data", dbName+".sqlite")
		if err := os.MkdirAll(filepath.Dir(address), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
	}

	return sqlite.Open(address), nil
}

func withDatabaseName(address string, dbName string) (string, error) {
	if dbName == "" {
		return address, nil
	}

	u, err := url.Parse(address)
	if err != nil {
		return "", fmt.Errorf("failed to parse database url: %w", err)
	}
	u.Path = "/" + dbName

	return u.String(), nil
}

func GetDB(address string, dbName string, logger *slog.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(address, dbName)
	if err != nil {
		return nil, err
	}

	return Open(dialector, logger)
}

// Open connects with error translation on, so unique index violations surface
// as gorm.ErrDuplicatedKey, and migrates every model.
func Open(dialector gorm.Dialector, logger *slog.Logger) (*gorm.DB, error) {
	myDB, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	if err := myDB.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("failed to migrate models: %w", err)
	}

	logger.Info("connected to db", "driver", dialector.Name())
	return myDB, nil
}

func CloseDB(myDB *gorm.DB, logger *slog.Logger) {
	if myDB == nil {
		return
	}

	sqlDB, err := myDB.DB()
	if err != nil {
		logger.Error("failed to get db instance", "err", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("failed to close db", "err", err)
		return
	}

	logger.Info("db connection closed")
}

func ResetDB(myDB *gorm.DB, logger *slog.Logger) {
	logger.Warn("resetting db...")

	ctx := context.Background()
	tables := []string{
		"password_resets",
		"heart_beats",
		"progress",
		"notifications",
		"friend_edges",
		"users",
	}

	for _, table := range tables {
		err := gorm.G[any](myDB).Exec(ctx, "DELETE FROM "+table)
		if err != nil {
			logger.Error("failed to reset table", "table", table, "err", err)
		}
	}

	logger.Info("db is reset")
}
