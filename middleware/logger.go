package middleware

import (
	"time"

	"go-blog-backend/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request once the handler chain finishes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		switch {
		case status >= 500:
			logger.Errorf("%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, latency)
		case status >= 400:
			logger.Warningf("%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, latency)
		default:
			logger.Debugf("%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, latency)
		}
	}
}
