package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"purser/internal/infrastructure/ratelimit"
	"purser/internal/shared/logger"
	"purser/internal/shared/utils"
)

// RateLimiter throttles a route group per client IP. When the backing store
// is unavailable the limiter fails open; losing rate limiting is preferable
// to refusing all logins.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	limit   ratelimit.Limit
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.RateLimiter, limit ratelimit.Limit, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		limit:   limit,
		logger:  logger,
	}
}

func (r *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := r.limiter.Allow(c.Request.Context(), c.ClientIP(), r.limit)
		if err != nil {
			r.logger.Warnw("rate limiter unavailable, allowing request", "error", err, "ip", c.ClientIP())
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "too many requests, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
