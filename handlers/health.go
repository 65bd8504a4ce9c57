package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Readiness reports, per dependency name, whether it is usable. Only
// dependencies that were configured should appear.
type Readiness func() map[string]bool

// RegisterHealth registers /health (always 200) and /ready (503 while any
// reported dependency is down).
func RegisterHealth(r *gin.Engine, started time.Time, ready Readiness) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{}
		if ready != nil {
			deps = ready()
		}
		ok := true
		for _, up := range deps {
			if !up {
				ok = false
			}
		}
		uptime := time.Since(started).String()
		if !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	})
}
