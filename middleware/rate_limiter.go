package middleware

import (
	"net/http"
	"time"

	"slotwise/config"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimitMiddleware limits requests per client IP with a fixed one-minute
// window in Redis, shared across instances. A limiter failure rejects the
// request rather than letting traffic through unmetered.
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()
		client := utils.GetRateLimitClient()
		limit := int64(config.AppConfig.MaxRequestsPerMin)

		key := "rl:" + getClientIP(c)
		res, err := fixedWindowScript.Run(c.Request.Context(), client, []string{key}, time.Minute.Milliseconds()).Result()
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "rate limiter unavailable"})
			return
		}
		count, ok := res.(int64)
		if !ok {
			logger.Warn("unexpected rate limiter result", zap.Any("result", res))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "rate limiter unavailable"})
			return
		}
		if count > limit {
			logger.Warn("Rate limit exceeded", zap.String("ip", getClientIP(c)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}
