package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/api/books", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func get(r http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	r := newEngine(RequestID())

	w := get(r, "/api/books", nil)
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	w = get(r, "/api/books", map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestLogger_WritesRequestLine(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := newEngine(RequestID(), Logger(logger))

	get(r, "/api/books", map[string]string{RequestIDHeader: "req-1"})

	out := buf.String()
	assert.Contains(t, out, "http request")
	assert.Contains(t, out, "path=/api/books")
	assert.Contains(t, out, "status=200")
	assert.Contains(t, out, "request_id=req-1")
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, slog.LevelError, levelFor("/api/books", 500))
	assert.Equal(t, slog.LevelWarn, levelFor("/api/books", 404))
	assert.Equal(t, slog.LevelDebug, levelFor("/healthz", 200))
	assert.Equal(t, slog.LevelInfo, levelFor("/api/books", 200))
}

func TestRateLimit_Returns429AfterBurst(t *testing.T) {
	r := newEngine(RateLimit(NewIPRateLimiter(0.001, 2)))

	assert.Equal(t, http.StatusOK, get(r, "/api/books", nil).Code)
	assert.Equal(t, http.StatusOK, get(r, "/api/books", nil).Code)

	w := get(r, "/api/books", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestRateLimit_SkipsHealth(t *testing.T) {
	r := newEngine(RateLimit(NewIPRateLimiter(0.001, 1)))

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, get(r, "/healthz", nil).Code)
	}
}

func TestIPRateLimiter_SeparateBuckets(t *testing.T) {
	l := NewIPRateLimiter(0.001, 1)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestIPRateLimiter_Cleanup(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	l.idle = -time.Second
	l.Allow("10.0.0.1")

	l.Cleanup()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.visitors)
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	r := newEngine(CORS([]string{"http://localhost:3000"}))

	w := get(r, "/api/books", map[string]string{"Origin": "http://localhost:3000"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = get(r, "/api/books", map[string]string{"Origin": "http://evil.test"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCORS_Preflight(t *testing.T) {
	r := newEngine(CORS(nil))

	req := httptest.NewRequest(http.MethodOptions, "/api/books", nil)
	req.Header.Set("Origin", "http://anywhere.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMarkStale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/fresh", func(c *gin.Context) { MarkStale(c, false); c.Status(http.StatusOK) })
	r.GET("/stale", func(c *gin.Context) { MarkStale(c, true); c.Status(http.StatusOK) })

	assert.Empty(t, get(r, "/fresh", nil).Header().Get(StaleHeader))
	assert.Equal(t, "true", get(r, "/stale", nil).Header().Get(StaleHeader))
}
