package handlers

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/apiscamp/apiscamp/go-services/pkg/logger"
	"github.com/gin-gonic/gin"
)

// AssetSource serves static assets from somewhere other than the local disk.
// Open must wrap fs.ErrNotExist for missing objects.
type AssetSource interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// RegisterStatic mounts /public. With a nil src the files come from dir on disk.
func RegisterStatic(r *gin.Engine, dir string, src AssetSource) {
	if src == nil {
		r.Static("/public", dir)
		return
	}
	r.GET("/public/*filepath", ServeAsset(src))
	r.HEAD("/public/*filepath", ServeAsset(src))
}

// ServeAsset streams the object named by the *filepath parameter from src.
func ServeAsset(src AssetSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimPrefix(path.Clean("/"+c.Param("filepath")), "/")
		if name == "" {
			c.Status(http.StatusNotFound)
			return
		}
		rc, err := src.Open(c.Request.Context(), name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				c.Status(http.StatusNotFound)
				return
			}
			logger.Errorf("static: open %s: %v", name, err)
			c.Status(http.StatusBadGateway)
			return
		}
		defer rc.Close()

		ctype := mime.TypeByExtension(path.Ext(name))
		if ctype == "" {
			ctype = "application/octet-stream"
		}
		c.DataFromReader(http.StatusOK, -1, ctype, rc, nil)
	}
}
