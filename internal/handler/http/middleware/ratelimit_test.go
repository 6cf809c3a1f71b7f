package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token/login/", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIPRateLimiter_BurstThenReject(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter("test-burst", 1, 3, RemoteAddrExtractor{})
	l.now = func() time.Time { return now }
	h := l.Middleware(okHandler())

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doRequest(h, "192.0.2.1:1234").Code, "request %d", i)
	}

	rec := doRequest(h, "192.0.2.1:1234")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"detail":"Request was throttled."}`, rec.Body.String())
	assert.Equal(t, 1.0, testutil.ToFloat64(rateLimitRejected.WithLabelValues("test-burst")))

	// トークンが補充されれば通る
	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, doRequest(h, "192.0.2.1:1234").Code)
}

func TestIPRateLimiter_PerIP(t *testing.T) {
	l := NewIPRateLimiter("test-per-ip", 1, 1, RemoteAddrExtractor{})
	h := l.Middleware(okHandler())

	assert.Equal(t, http.StatusOK, doRequest(h, "192.0.2.1:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(h, "192.0.2.1:2").Code)
	assert.Equal(t, http.StatusOK, doRequest(h, "192.0.2.2:1").Code)
	assert.Equal(t, 2, l.Len())
}

func TestIPRateLimiter_UnresolvableIPPassesThrough(t *testing.T) {
	l := NewIPRateLimiter("test-bad-ip", 1, 1, RemoteAddrExtractor{})
	h := l.Middleware(okHandler())

	assert.Equal(t, http.StatusOK, doRequest(h, "garbage").Code)
	assert.Equal(t, http.StatusOK, doRequest(h, "garbage").Code)
	assert.Equal(t, 0, l.Len())
}

func TestIPRateLimiter_CleanupIdleVisitors(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter("test-cleanup", 1, 1, RemoteAddrExtractor{})
	l.now = func() time.Time { return now }
	l.lastClean = now
	h := l.Middleware(okHandler())

	doRequest(h, "192.0.2.1:1")
	doRequest(h, "192.0.2.2:1")
	require.Equal(t, 2, l.Len())

	now = now.Add(11 * time.Minute)
	doRequest(h, "192.0.2.3:1")
	assert.Equal(t, 1, l.Len())
}
