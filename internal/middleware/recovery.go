package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/fantasy_roster/internal/apierror"
	"github.com/festy23/fantasy_roster/internal/metrics"
)

// Recovery turns a handler panic into the standard internal error envelope.
// The open roster transaction, if any, has already been rolled back by gorm.
func Recovery(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			route := c.FullPath()
			metrics.RecordPanic(route)
			logger.Errorw("panic recovered",
				"panic", recovered,
				"route", route,
				"method", c.Request.Method,
				"request_id", GetRequestID(c),
				"stack", string(debug.Stack()),
			)
			apierror.Respond(c, apierror.CodeInternal, "internal server error", http.StatusInternalServerError)
			c.Abort()
		}()

		c.Next()
	}
}
