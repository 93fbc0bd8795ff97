// internal/interfaces/http/middleware/rate_limit.go
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
)

// RateLimit implements a fixed one-minute window per client IP using Redis.
// Requests are allowed through when Redis is unavailable.
func RateLimit(cfg *config.Config, redisClient *redis.Client, log logrus.FieldLogger) gin.HandlerFunc {
	limit := cfg.Security.RateLimitPerMinute

	return func(c *gin.Context) {
		if redisClient == nil || limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s", c.ClientIP())

		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		current, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			log.WithError(err).Warn("rate limiter unavailable")
			c.Next()
			return
		}
		if current == 1 {
			if err := redisClient.Expire(ctx, key, time.Minute).Err(); err != nil {
				log.WithError(err).Warn("failed to set rate limit window")
			}
		}

		if current > int64(limit) {
			c.Header("Retry-After", "60")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(int64(limit)-current, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Minute).Unix(), 10))

		c.Next()
	}
}
