package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_String(t *testing.T) {
	p := Policy{
		{"default-src", []string{"'self'"}},
		{"script-src", nil},
		{"img-src", []string{"'self'", "data:"}},
	}
	assert.Equal(t, "default-src 'self'; img-src 'self' data:", p.String())
	assert.Empty(t, Policy{}.String())
}

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/api/recipes/download_shopping_cart/", want: APIPolicy.String()},
		{path: "/s/Uk3fQz", want: APIPolicy.String()},
		{path: "/swagger/index.html", want: SwaggerPolicy.String()},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			SecurityHeaders(okHandler(http.StatusOK, "")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.want, rec.Header().Get("Content-Security-Policy"))
			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
		})
	}

	assert.Equal(t, "default-src 'none'; frame-ancestors 'none'; base-uri 'none'; form-action 'none'", APIPolicy.String())
}
