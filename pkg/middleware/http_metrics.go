package middleware

import (
	"strconv"

	"github.com/apiscamp/apiscamp/go-services/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics counts handled requests by method, matched route template and status.
// Unmatched requests are grouped under route "unmatched" to bound label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
