package http

import (
	"net/http"
	"strconv"
	"time"

	"foodgram/internal/handler/http/pathutil"
	"foodgram/internal/handler/http/responsewriter"
	"foodgram/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsMiddleware records request count, latency and sizes.
// Paths are normalized so that recipe and user IDs do not become label values.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		// /api/recipes/123/ -> /api/recipes/:id/
		normalizedPath := pathutil.NormalizePath(r.URL.Path)

		rw := responsewriter.Wrap(w)

		start := time.Now()
		next.ServeHTTP(rw, r)

		metrics.RecordHTTPRequest(
			r.Method,
			normalizedPath,
			strconv.Itoa(rw.StatusCode()),
			time.Since(start),
			r.ContentLength,
			int64(rw.BytesWritten()),
		)
	})
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
