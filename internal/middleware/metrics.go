package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/enlamano/bcugateway/internal/metrics"
)

// Metrics records the request counter and duration histogram for every
// request. The route template is used as the path label to keep cardinality
// bounded.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		m.HTTPRequestsTotal.
			WithLabelValues(path, method, strconv.Itoa(c.Writer.Status())).
			Inc()
		m.HTTPRequestDuration.
			WithLabelValues(path, method).
			Observe(time.Since(start).Seconds())
	}
}
