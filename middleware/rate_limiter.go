package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"go.uber.org/zap"
)

// RateLimiter is a fixed-window limiter keyed per IP, method and route.
// When Redis is unavailable requests pass through.
func RateLimiter(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.RedisClient == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := "rl:" + c.ClientIP() + ":" + c.Request.Method + ":" + c.FullPath()
		resetKey := key + ":resetAt"

		// Window keys get their TTL before the first increment.
		pipe := config.RedisClient.TxPipeline()
		pipe.SetNX(ctx, key, 0, window)
		pipe.SetNX(ctx, resetKey, time.Now().Add(window).Unix(), window)
		incr := pipe.Incr(ctx, key)
		if _, err := pipe.Exec(ctx); err != nil {
			zap.L().Warn("[rate-limit] redis unavailable, allowing request", zap.Error(err))
			c.Next()
			return
		}
		count := incr.Val()

		resetAtUnix, err := config.RedisClient.Get(ctx, resetKey).Int64()
		if err != nil {
			resetAtUnix = time.Now().Add(window).Unix()
		}
		resetAt := time.Unix(resetAtUnix, 0)

		remaining := maxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}

		resetInSeconds := int(time.Until(resetAt).Seconds())
		if resetInSeconds < 0 {
			resetInSeconds = 0
		}

		rate := &models.RateLimiter{
			Limit:          maxRequests,
			Remaining:      remaining,
			ResetAt:        resetAt,
			ResetInSeconds: resetInSeconds,
		}
		c.Set("rateLimiter", rate)

		if int(count) > maxRequests {
			c.Header("Retry-After", strconv.Itoa(resetInSeconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ApiResponse{
				Success: false,
				Message: "Too many requests",
				Rate:    rate,
			})
			return
		}

		c.Next()
	}
}
