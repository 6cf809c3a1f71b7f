package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "none", incoming: ""},
		{name: "uuid kept", incoming: "0192f0c4-7b1e-7cc3-9d2a-3c1f5e8a9b10", keep: true},
		{name: "token kept", incoming: "web_01.abc-DEF", keep: true},
		{name: "spaces replaced", incoming: "hello world"},
		{name: "newline replaced", incoming: "id\nforged=1"},
		{name: "too long replaced", incoming: strings.Repeat("a", 65)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var inCtx string
			h := Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				inCtx = FromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/recipes/", nil)
			if tt.incoming != "" {
				req.Header.Set(Header, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			got := rec.Header().Get(Header)
			assert.Equal(t, got, inCtx)
			if tt.keep {
				assert.Equal(t, tt.incoming, got)
				return
			}
			id, err := uuid.Parse(got)
			require.NoError(t, err)
			assert.Equal(t, uuid.Version(7), id.Version())
		})
	}
}

func TestMiddleware_UniquePerRequest(t *testing.T) {
	seen := map[string]bool{}
	h := Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	for range 100 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		id := rec.Header().Get(Header)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestFromContext(t *testing.T) {
	assert.Empty(t, FromContext(context.Background()))
	assert.Equal(t, "abc", FromContext(WithRequestID(context.Background(), "abc")))
}
