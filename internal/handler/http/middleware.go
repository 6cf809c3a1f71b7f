package http

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"foodgram/internal/handler/http/requestid"
	"foodgram/internal/handler/http/respond"
	"foodgram/internal/handler/http/responsewriter"

	"go.opentelemetry.io/otel/trace"
)

// Logging writes one line per request with its status, size and latency.
// 5xx responses log at error level and 4xx at warn.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := responsewriter.Wrap(w)
			next.ServeHTTP(rw, r)
			elapsed := time.Since(start)

			level := slog.LevelInfo
			switch status := rw.StatusCode(); {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}

			logger.LogAttrs(r.Context(), level, "request completed",
				slog.String("request_id", requestid.FromContext(r.Context())),
				slog.String("trace_id", trace.SpanContextFromContext(r.Context()).TraceID().String()),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.UserAgent()),
				slog.Int("status", rw.StatusCode()),
				slog.Int("bytes", rw.BytesWritten()),
				slog.Float64("duration_ms", float64(elapsed.Microseconds())/1000),
			)
		})
	}
}

// Recover turns a panic into a 500 with a generic detail and logs the stack.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				respond.Detail(w, http.StatusInternalServerError, "Internal server error.")
				logger.Error("panic recovered",
					slog.String("request_id", requestid.FromContext(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())))
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// LimitRequestBody caps request bodies at maxBytes. Avatar and recipe images
// arrive base64-encoded inside JSON, so the limit must leave room for them.
func LimitRequestBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// TrailingSlash appends the missing trailing slash to /api/ paths before routing,
// so that "/api/recipes/1" and "/api/recipes/1/" reach the same handler
// without a redirect that would drop the request body.
func TrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		if strings.HasPrefix(p, "/api/") && !strings.HasSuffix(p, "/") {
			r2 := r.Clone(r.Context())
			r2.URL.Path = p + "/"
			if r2.URL.RawPath != "" {
				r2.URL.RawPath += "/"
			}
			r = r2
		}
		next.ServeHTTP(w, r)
	})
}
