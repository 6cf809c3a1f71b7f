// Package requestid tags every request with an ID that is echoed in the
// X-Request-ID response header and attached to log lines.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header carries the ID in both directions.
const Header = "X-Request-ID"

const maxLen = 64

type ctxKey struct{}

// FromContext returns the request ID, or "" outside a request.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// WithRequestID stores id in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// Middleware keeps a well-formed incoming X-Request-ID and otherwise
// generates a time-ordered UUID.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if !valid(id) {
			id = newID()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
	})
}

func newID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// valid accepts up to 64 characters of [A-Za-z0-9._-], which keeps
// client-supplied IDs safe to log.
func valid(id string) bool {
	if id == "" || len(id) > maxLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}
