package http

import (
	"context"
	"maps"
	"net/http"
	"sync"
	"time"

	"foodgram/internal/handler/http/respond"
)

// Timeout cancels the request context after d and answers 504
// {"detail": "Request timed out."} unless the handler already started its
// response. After the deadline the handler's writes fail with
// http.ErrHandlerTimeout. A panic in the handler is re-raised on the
// serving goroutine so Recover still sees it.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			tw := &timeoutWriter{w: w, h: make(http.Header)}
			done := make(chan struct{})
			panicked := make(chan any, 1)

			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
					}
				}()
				next.ServeHTTP(tw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case <-done:
			case p := <-panicked:
				panic(p)
			case <-ctx.Done():
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.timedOut = true
				if !tw.wrote {
					respond.Detail(w, http.StatusGatewayTimeout, "Request timed out.")
				}
			}
		})
	}
}

// timeoutWriter gives the handler its own header map and copies it to the
// real writer on the first write, so the timer and the handler never touch
// w at the same time.
type timeoutWriter struct {
	w        http.ResponseWriter
	h        http.Header
	mu       sync.Mutex
	wrote    bool
	timedOut bool
}

func (tw *timeoutWriter) Header() http.Header { return tw.h }

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.writeHeaderLocked(code)
}

func (tw *timeoutWriter) writeHeaderLocked(code int) {
	if tw.timedOut || tw.wrote {
		return
	}
	tw.wrote = true
	maps.Copy(tw.w.Header(), tw.h)
	tw.w.WriteHeader(code)
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	tw.writeHeaderLocked(http.StatusOK)
	return tw.w.Write(b)
}
