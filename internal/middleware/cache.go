package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// CacheControl sets the Cache-Control header for responses.
func CacheControl(maxAgeSeconds int) gin.HandlerFunc {
	return CacheDirective(fmt.Sprintf("private, max-age=%d", maxAgeSeconds))
}

// NoStore forbids any cache from keeping the response. Used for health data.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Header("Pragma", "no-cache")
		c.Next()
	}
}

// CacheDirective sets an arbitrary Cache-Control directive.
func CacheDirective(directive string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", directive)
		c.Next()
	}
}
