package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger returns a middleware that logs every request once it completes.
// Requests slower than slow are logged at warn level; zero disables the threshold.
func Logger(logger *zap.SugaredLogger, slow time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := []interface{}{
			"status", status,
			"method", c.Request.Method,
			"route", c.FullPath(),
			"path", c.Request.URL.Path,
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if id := GetRequestID(c); id != "" {
			fields = append(fields, "request_id", id)
		}
		for _, key := range []string{"league_id", "manager_id"} {
			if v := c.Query(key); v != "" {
				fields = append(fields, key, v)
			}
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			logger.Errorw("HTTP request", fields...)
		case status >= 400:
			logger.Warnw("HTTP request", fields...)
		case slow > 0 && latency > slow:
			logger.Warnw("slow HTTP request", fields...)
		default:
			logger.Infow("HTTP request", fields...)
		}
	}
}
