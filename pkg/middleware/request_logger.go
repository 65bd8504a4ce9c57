package middleware

import (
	"strings"

	"github.com/apiscamp/apiscamp/go-services/pkg/logger"
	"github.com/gin-gonic/gin"
)

// MountLogger logs "METHOD path - ip" for every request under prefix, whatever
// the method and whether or not a route matches, then always continues the
// chain. The logged path is relative to the mount point, so GET /reg/x logs
// "GET /x - 10.0.0.1". Install it with Engine.Use so it also runs before 404s.
func MountLogger(prefix string) gin.HandlerFunc {
	prefix = "/" + strings.Trim(prefix, "/")
	return func(c *gin.Context) {
		if rel, ok := underMount(c.Request.URL.Path, prefix); ok {
			logger.Infof("%s %s - %s", c.Request.Method, rel, c.ClientIP())
		}
		c.Next()
	}
}

// underMount reports whether path is prefix itself or below it on a segment
// boundary, and returns the remainder ("/" when nothing is left).
func underMount(path, prefix string) (string, bool) {
	if prefix == "/" {
		return path, true
	}
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	rest := path[len(prefix):]
	if rest == "" {
		return "/", true
	}
	if rest[0] != '/' {
		return "", false
	}
	return rest, true
}
