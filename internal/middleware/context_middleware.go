package middleware

import (
	"time"

	"go-ess/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextLogger installs a request-scoped logger carrying the request id
// and logs one line per request once the handler chain returns.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		rid := contextutil.GetRequestID(ctx)
		if rid == "" {
			rid = uuid.New().String()
			ctx = contextutil.WithRequestID(ctx, rid)
			c.Header(RequestIDHeader, rid)
		}

		reqLogger := logger.With(zap.String("request_id", rid))
		c.Request = c.Request.WithContext(contextutil.WithLogger(ctx, reqLogger))

		start := time.Now()
		c.Next()

		reqLogger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("user_id", c.GetString("user_id")),
		)
	}
}
