package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"umlage/internal/metrics"
)

// Metrics records request counts and durations per matched route.
// Unmatched routes are recorded under "unmatched".
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequest(route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
