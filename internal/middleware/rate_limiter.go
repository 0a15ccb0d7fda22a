package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Xaan1506/NSTrack-Backend/internal/apperror"
)

const RateLimitPrefix = "ratelimit:"

// Limiter decides whether clientID may make one more request in the current
// window.
type Limiter interface {
	Allow(ctx context.Context, clientID string) (bool, error)
}

type RateLimiter struct {
	mu              sync.Mutex
	limit           int
	duration        time.Duration
	requestCounts   map[string]int
	requestExpiry   map[string]time.Time
	lastCleanup     time.Time
	cleanupInterval time.Duration
}

func NewRateLimiter(duration time.Duration, limit int, cleanupInterval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:           limit,
		duration:        duration,
		requestCounts:   make(map[string]int),
		requestExpiry:   make(map[string]time.Time),
		lastCleanup:     time.Now(),
		cleanupInterval: cleanupInterval,
	}
}

func (rl *RateLimiter) AllowRequest(clientID string) bool {
	ts := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if ts.Sub(rl.lastCleanup) > rl.cleanupInterval {
		unSafeClearExpiredEntries(ts, rl)
		rl.lastCleanup = ts
	}

	expiry, exists := rl.requestExpiry[clientID]
	if !exists || ts.After(expiry) {
		rl.requestCounts[clientID] = 1
		rl.requestExpiry[clientID] = ts.Add(rl.duration)
		return true
	}

	if rl.requestCounts[clientID] < rl.limit {
		rl.requestCounts[clientID]++
		return true
	}

	return false
}

func (rl *RateLimiter) Allow(_ context.Context, clientID string) (bool, error) {
	return rl.AllowRequest(clientID), nil
}

// unSafeClearExpiredEntries Not thread-safe; caller must hold rl.mu lock.
func unSafeClearExpiredEntries(ts time.Time, rl *RateLimiter) {
	for clientID, expiry := range rl.requestExpiry {
		if ts.After(expiry) {
			delete(rl.requestCounts, clientID)
			delete(rl.requestExpiry, clientID)
		}
	}
}

// RedisRateLimiter shares a fixed window counter across instances.
type RedisRateLimiter struct {
	client   *redis.Client
	limit    int
	duration time.Duration
}

func NewRedisRateLimiter(client *redis.Client, duration time.Duration, limit int) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:   client,
		limit:    limit,
		duration: duration,
	}
}

func (rl *RedisRateLimiter) Allow(ctx context.Context, clientID string) (bool, error) {
	key := RateLimitPrefix + clientID

	count, err := rl.client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}

	// The first request of a window starts its expiry.
	if count == 1 {
		if err := rl.client.Expire(ctx, key, rl.duration).Err(); err != nil {
			return false, err
		}
	}

	return count <= int64(rl.limit), nil
}

// RateLimit rejects requests over the limit with 429. A failing limiter
// lets the request through.
func RateLimit(limiter Limiter, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		clientID := c.ClientIP()

		allowed, err := limiter.Allow(c.Request.Context(), clientID)
		if err != nil {
			logger.Warn("rate limiter unavailable", "err", err)
			c.Next()
			return
		}

		if !allowed {
			_ = c.AbortWithError(429, apperror.TooManyRequests())
			return
		}

		c.Next()
	}
}
