package middlewares

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// VoteRateLimiter allows each authenticated user limit requests per window.
// Counters live in Redis under "<prefix>:<user id>" and expire with the window.
func VoteRateLimiter(rdb redis.Cmdable, prefix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(UserIDKey)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		ctx := c.Request.Context()
		userKey := prefix + ":" + userID

		count, err := rdb.Incr(ctx, userKey).Result()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "redis error incrementing count"})
			return
		}

		// Set TTL only for the first increment (when count = 1)
		if count == 1 {
			if err := rdb.Expire(ctx, userKey, window).Err(); err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "redis error setting TTL"})
				return
			}
		}

		if count > int64(limit) {
			retryAfter, _ := rdb.TTL(ctx, userKey).Result()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			return
		}

		c.Next()
	}
}
