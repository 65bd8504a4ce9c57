package router

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/apiscamp/apiscamp/go-services/pkg/logger"
	"github.com/apiscamp/apiscamp/go-services/pkg/metrics"
	"github.com/apiscamp/apiscamp/go-services/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNew_RegMountLogsThenNotFound(t *testing.T) {
	var buf bytes.Buffer
	restore := logger.SetOutput(&buf)
	defer restore()

	r := New(Options{PublicDir: t.TempDir(), ViewsDir: t.TempDir()})

	req := httptest.NewRequest(http.MethodGet, "/reg/anything", nil)
	req.RemoteAddr = "10.1.2.3:4567"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, buf.String(), "GET /anything - 10.1.2.3")
}

func TestNew_ServesExerciseRoutes(t *testing.T) {
	views := t.TempDir()
	public := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(views, "index.html"), []byte("<p>hi</p>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(public, "style.css"), []byte("p{}"), 0o644))

	r := New(Options{
		PublicDir:    public,
		ViewsDir:     views,
		MessageStyle: func() string { return "uppercase" },
		Now:          func() time.Time { return time.Unix(0, 0).UTC() },
	})

	cases := []struct {
		method, path string
		code         int
		body         string
	}{
		{http.MethodGet, "/", http.StatusOK, "<p>hi</p>"},
		{http.MethodGet, "/public/style.css", http.StatusOK, "p{}"},
		{http.MethodGet, "/json", http.StatusOK, `{"message":"HELLO JSON"}`},
		{http.MethodGet, "/now", http.StatusOK, `{"time":"1970-01-01T00:00:00Z"}`},
		{http.MethodPost, "/sunshine/echo", http.StatusOK, `{"echo":"sunshine"}`},
		{http.MethodGet, "/name?first=Alice&last=Jones", http.StatusOK, `{"name":"Alice Jones"}`},
		{http.MethodGet, "/health", http.StatusOK, "healthy"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		require.Equal(t, tc.code, w.Code, tc.path)
		require.Equal(t, tc.body, strings.TrimSpace(w.Body.String()), tc.path)
		require.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader), tc.path)
	}
}

func TestNew_MetricsAndMounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.RegisterCollectors(reg)

	mounted := false
	r := New(Options{
		Gatherer: reg,
		Mount: []func(*gin.Engine){func(e *gin.Engine) {
			mounted = true
			e.GET("/extra", func(c *gin.Context) { c.Status(http.StatusNoContent) })
		}},
	})
	require.True(t, mounted)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/extra", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "apiscamp_http_requests_total")
}

func TestNew_RateLimitRunsBeforeRoutes(t *testing.T) {
	r := New(Options{RateLimit: middleware.RateLimitMiddleware(0.001, 1, nil)})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}
