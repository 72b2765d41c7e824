package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const APIKeyHeader = "x-api-key"

// APIKey отклоняет запросы с неверным x-api-key.
// Пустой ключ отключает проверку, preflight пропускается всегда
func APIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		got := c.GetHeader(APIKeyHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok":    false,
				"error": "INVALID_API_KEY",
			})
			return
		}
		c.Next()
	}
}
