package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request through slog.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"duration", time.Since(start),
		}
		switch {
		case status >= 500:
			slog.Error("[HTTP] Request failed", attrs...)
		case status >= 400:
			slog.Warn("[HTTP] Request rejected", attrs...)
		default:
			slog.Debug("[HTTP] Request served", attrs...)
		}
	}
}
