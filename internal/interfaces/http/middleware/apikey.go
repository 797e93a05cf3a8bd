package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKey requires the shared API key as the basic-auth username on every
// API call. The password part of the credentials is ignored.
func APIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _, ok := c.Request.BasicAuth()
		if !ok || user != key {
			c.Header("WWW-Authenticate", `Basic realm="API Key required"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API Key required"})
			return
		}
		c.Next()
	}
}
