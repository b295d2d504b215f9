package middlewares

import (
	"fmt"
	"net/http"
	"time"

	"civichub/internal/cache"

	"github.com/gin-gonic/gin"
)

// RateLimit caps how often one user can perform an action inside a fixed
// window. Counters live in Redis; with Redis down the limiter fails open.
// Must run after AuthMiddleware.
func RateLimit(action string, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate:%s:%s", action, userID.Hex())
		if !cache.Allow(key, max, window) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Please try again later."})
			c.Abort()
			return
		}
		c.Next()
	}
}
