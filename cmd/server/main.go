package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Xaan1506/NSTrack-Backend/internal/config"
	"github.com/Xaan1506/NSTrack-Backend/internal/dependency"
	"github.com/Xaan1506/NSTrack-Backend/internal/dto"
	"github.com/Xaan1506/NSTrack-Backend/internal/routers"
	"github.com/Xaan1506/NSTrack-Backend/internal/service"
	"github.com/Xaan1506/NSTrack-Backend/internal/util"
)

const shutdownTimeout = 10 * time.Second

// run serves until SIGINT/SIGTERM and returns the process exit code.
func run() int {
	// config
	_ = godotenv.Load()

	cfg, err := config.LoadConfigFromEnv()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		return 1
	}

	logger := util.GetLogger(cfg.SlogLevel(), cfg.GinMode)
	gin.SetMode(cfg.GinMode)

	// init dependency
	dep, err := dependency.InitDependency(cfg, logger)
	if err != nil {
		logger.Error("failed to init dependency", "err", err)
		return 1
	}
	defer dependency.CloseDependency(dep)

	// validator
	dto.InitValidator()

	svcs, err := service.NewServices(dep)
	if err != nil {
		logger.Error("failed to init services", "err", err)
		return 1
	}

	// router
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routers.SetupRouter(dep, svcs),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		logger.Error("failed to start server", "err", err)
		return 1
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}

	return 0
}

// @title NSTrack API
// @version 1.0
// @description Student progress tracking backend
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	os.Exit(run())
}
