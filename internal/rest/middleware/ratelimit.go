package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paperstack/paperstack/internal/config"
	ierr "github.com/paperstack/paperstack/internal/errors"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

// RateLimitMiddleware applies a token bucket per client address. Limiters of
// idle clients expire after limiterIdleTTL.
func RateLimitMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if cfg.RateLimit.RequestsPerSecond <= 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	limiters := gocache.New(limiterIdleTTL, 2*limiterIdleTTL)
	every := rate.Limit(cfg.RateLimit.RequestsPerSecond)
	burst := max(cfg.RateLimit.Burst, 1)

	return func(c *gin.Context) {
		key := c.ClientIP()

		var limiter *rate.Limiter
		if cached, ok := limiters.Get(key); ok {
			limiter = cached.(*rate.Limiter)
		} else {
			limiter = rate.NewLimiter(every, burst)
			// Add fails when a concurrent request stored one first
			if err := limiters.Add(key, limiter, gocache.DefaultExpiration); err != nil {
				if cached, ok := limiters.Get(key); ok {
					limiter = cached.(*rate.Limiter)
				}
			}
		}
		limiters.Set(key, limiter, gocache.DefaultExpiration)

		if !limiter.Allow() {
			c.Header("Retry-After", "1")
			_ = c.Error(ierr.NewError("rate limit exceeded").
				WithHint("Too many requests, please slow down").
				WithReportableDetails(map[string]any{"status": http.StatusTooManyRequests}).
				Mark(ierr.ErrRateLimited))
			c.Abort()
			return
		}
		c.Next()
	}
}
