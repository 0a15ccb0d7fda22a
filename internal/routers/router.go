package routers

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/Xaan1506/NSTrack-Backend/internal/dependency"
	"github.com/Xaan1506/NSTrack-Backend/internal/middleware"
	"github.com/Xaan1506/NSTrack-Backend/internal/service"
)

func SetupRouter(dep *dependency.Dependency, svcs *service.Services) *gin.Engine {
	r := gin.New()

	r.Use(middleware.PanicHandler())

	logConfig := sloggin.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
	}

	allowOrigins := dep.Cfg.CorsAllowOrigins
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return slices.Contains(allowOrigins, "*") || slices.Contains(allowOrigins, origin)
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(sloggin.NewWithConfig(dep.Logger, logConfig))
	r.Use(middleware.ErrorHandler())

	// Rejections must pass back through ErrorHandler to get a body.
	if limiter := newLimiter(dep); limiter != nil {
		r.Use(middleware.RateLimit(limiter, dep.Logger))
	}

	api := r.Group("/api")
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	APIRouter(api, svcs)
	DevRouter(api.Group("/dev"), dep)

	return r
}

// newLimiter returns nil when rate limiting is switched off.
func newLimiter(dep *dependency.Dependency) middleware.Limiter {
	if dep.Cfg.RateLimitRequests <= 0 {
		return nil
	}

	window := dep.Cfg.RateLimitWindow()
	if dep.Cfg.IsRedisEnabled && dep.Redis != nil {
		return middleware.NewRedisRateLimiter(dep.Redis, window, dep.Cfg.RateLimitRequests)
	}
	return middleware.NewRateLimiter(window, dep.Cfg.RateLimitRequests, window)
}
