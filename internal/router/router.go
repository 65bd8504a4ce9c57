// Package router assembles the HTTP engine: middleware stack, the exercise
// routes, static assets and the operational endpoints.
package router

import (
	"time"

	"github.com/apiscamp/apiscamp/go-services/handlers"
	"github.com/apiscamp/apiscamp/go-services/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LogMount is where the logging middleware is attached.
const LogMount = "/reg"

// Options configures New. Zero values give a router with no rate limiting, files
// from ./public and ./views, and no extra routes.
type Options struct {
	PublicDir string
	ViewsDir  string
	// Assets replaces PublicDir as the /public source when set.
	Assets handlers.AssetSource

	MessageStyle func() string
	Now          func() time.Time

	// RateLimit is installed after request id and before any route when non-nil.
	RateLimit gin.HandlerFunc

	Started   time.Time
	Readiness handlers.Readiness

	// Gatherer backs /metrics; nil skips the endpoint.
	Gatherer prometheus.Gatherer

	// Mount registers additional route groups, e.g. the person API.
	Mount []func(r *gin.Engine)
}

// New builds the engine. The order of Use calls is the order each request sees.
func New(opts Options) *gin.Engine {
	if opts.PublicDir == "" {
		opts.PublicDir = "public"
	}
	if opts.ViewsDir == "" {
		opts.ViewsDir = "views"
	}
	if opts.Started.IsZero() {
		opts.Started = time.Now()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.CORS(), middleware.RequestID(), middleware.AccessLog(), middleware.Metrics())
	// engine-level so it also runs for paths with no route
	r.Use(middleware.MountLogger(LogMount))
	if opts.RateLimit != nil {
		r.Use(opts.RateLimit)
	}

	handlers.RegisterBasicRoutes(r, handlers.BasicOptions{
		ViewsDir:     opts.ViewsDir,
		MessageStyle: opts.MessageStyle,
		Now:          opts.Now,
	})
	handlers.RegisterStatic(r, opts.PublicDir, opts.Assets)
	handlers.RegisterHealth(r, opts.Started, opts.Readiness)
	handlers.RegisterSwagger(r)
	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	for _, mount := range opts.Mount {
		mount(r)
	}
	return r
}
