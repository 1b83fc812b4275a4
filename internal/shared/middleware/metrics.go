package middleware

import (
	"strconv"
	"time"

	"book-catalog/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics ghi counter + histogram theo route template (c.FullPath),
// không theo URL thật để tránh label cardinality cao
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.HTTPRequestsTotal.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Inc()
		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route).
			Observe(time.Since(start).Seconds())
	}
}
