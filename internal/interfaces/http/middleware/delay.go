package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Delay holds every request for the given duration before handling it,
// simulating a slow network for the demo frontend.
func Delay(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d > 0 {
			select {
			case <-time.After(d):
			case <-c.Request.Context().Done():
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
