package middleware

import (
	"time"

	"github.com/apiscamp/apiscamp/go-services/pkg/logger"
	"github.com/gin-gonic/gin"
)

// AccessLog writes one line per request through pkg/logger once the handler chain returns.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		rid, _ := c.Get(RequestIDKey)
		logger.Infof("%d %s %s %s rid=%v", c.Writer.Status(), c.Request.Method, c.Request.URL.Path, time.Since(start), rid)
	}
}
