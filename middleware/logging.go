package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stridefoot/footwear-erp-api/logger"
)

// RequestLogger logs one line per request with its status and latency
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		kv := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"actor", ActorFrom(c),
		}
		if len(c.Errors) > 0 {
			kv = append(kv, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("Request failed", kv...)
		case status >= 400:
			log.Warn("Request rejected", kv...)
		default:
			log.Info("Request handled", kv...)
		}
	}
}
