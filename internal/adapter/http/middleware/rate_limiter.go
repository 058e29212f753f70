package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type rateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

// RateLimiter enforces fixed-window limits per endpoint. Authenticated
// requests are keyed by user id, anonymous ones by client IP.
type RateLimiter struct {
	cache  *cache.Cache
	config map[string]RateLimitConfig
	logger zerolog.Logger
	mutex  sync.Mutex
}

func NewRateLimiter(logger zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		cache: cache.New(5*time.Minute, 10*time.Minute),
		config: map[string]RateLimitConfig{
			"POST /signup": {Requests: 5, Window: time.Minute},
			"POST /auth":   {Requests: 10, Window: time.Minute},
			"default":      {Requests: 120, Window: time.Minute},
		},
		logger: logger,
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()

		if path == "" {
			path = c.Request.URL.Path
		}

		methodPath := c.Request.Method + " " + path

		config, exists := rl.config[methodPath]

		if !exists {
			config = rl.config["default"]
		}

		key := fmt.Sprintf("rate_limit:%s:%s", methodPath, clientKey(c))

		allowed, remaining, resetTime := rl.check(key, config)

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			rl.logger.Warn().
				Str("key", key).
				Int("limit", config.Requests).
				Msg("rate limit exceeded")

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": int(time.Until(resetTime).Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// SetConfig overrides the limit for one "METHOD /path" pattern.
func (rl *RateLimiter) SetConfig(methodPath string, config RateLimitConfig) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	rl.config[methodPath] = config
}

func (rl *RateLimiter) check(key string, config RateLimitConfig) (bool, int, time.Time) {
	now := time.Now()

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	if cached, found := rl.cache.Get(key); found {
		entry := cached.(rateLimitEntry)

		if now.Before(entry.ResetTime) {
			if entry.Count >= config.Requests {
				return false, 0, entry.ResetTime
			}

			entry.Count++
			rl.cache.Set(key, entry, cache.DefaultExpiration)

			return true, config.Requests - entry.Count, entry.ResetTime
		}
	}

	resetTime := now.Add(config.Window)
	rl.cache.Set(key, rateLimitEntry{Count: 1, ResetTime: resetTime}, config.Window)

	return true, config.Requests - 1, resetTime
}

func clientKey(c *gin.Context) string {
	if userID, exists := c.Get(userIDKey); exists {
		return fmt.Sprintf("user_%v", userID)
	}

	return c.ClientIP()
}
