package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/orgdir/orgdir/internal/metrics"
	"github.com/orgdir/orgdir/pkg/logger"
)

// RequestIDKey is the gin context key carrying the per-request id.
const RequestIDKey = "request_id"

// RequestLogMiddleware assigns each request an id, echoes it in the
// X-Request-ID header, records prometheus metrics and logs the outcome.
func RequestLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := c.Writer.Status()

		metrics.RequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(status)).Inc()
		metrics.RequestDuration.WithLabelValues(c.Request.Method, path).Observe(elapsed.Seconds())

		log := logger.WithRequestID(requestID)
		if status >= 500 {
			log.Error("request failed", "method", c.Request.Method, "path", path,
				"status", status, "duration_ms", elapsed.Milliseconds())
		} else {
			log.Info("request", "method", c.Request.Method, "path", path,
				"status", status, "duration_ms", elapsed.Milliseconds())
		}
	}
}

// RequestID returns the id assigned to this request.
func RequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
