package http

import (
	"net/http"

	"foodgram/internal/handler/http/respond"
)

// Header and URI limits enforced by InputValidation.
const (
	MaxAuthorizationHeaderBytes = 8 << 10
	MaxPathBytes                = 2 << 10
)

// InputValidation rejects requests whose Authorization header or path exceed
// sane bounds before they reach token parsing or routing.
// Body size is left to LimitRequestBody.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// JWT は通常 1KB 未満
			if len(r.Header.Get("Authorization")) > MaxAuthorizationHeaderBytes {
				respond.Detail(w, http.StatusBadRequest, "Authorization header too large.")
				return
			}
			if len(r.URL.Path) > MaxPathBytes {
				respond.Detail(w, http.StatusRequestURITooLong, "URI too long.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
