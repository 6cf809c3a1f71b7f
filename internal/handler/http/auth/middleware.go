// Package auth contains the HTTP side of authentication: token parsing
// middleware and the login / logout endpoints.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"foodgram/internal/handler/http/respond"
	authservice "foodgram/internal/service/auth"
)

// TokenParser verifies a raw token.
type TokenParser interface {
	ParseToken(ctx context.Context, token string) (*authservice.Claims, error)
}

// Authenticate parses the Authorization header when present.
//
// Both "Token <t>" and "Bearer <t>" are accepted. Requests without the
// header continue anonymously; a header with a bad or revoked token is
// rejected with 401 so the client learns its token is no longer valid.
func Authenticate(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			raw, ok := extractToken(header)
			if !ok {
				RecordAuthCheck("malformed", time.Since(start))
				respond.Detail(w, http.StatusUnauthorized, "Invalid token header.")
				return
			}

			claims, err := parser.ParseToken(r.Context(), raw)
			switch {
			case err == nil:
			case errors.Is(err, authservice.ErrRevocationUnavailable):
				RecordAuthCheck("unavailable", time.Since(start))
				respond.SafeError(w, http.StatusServiceUnavailable, err)
				return
			default:
				slog.Debug("token rejected", slog.Any("error", err))
				RecordAuthCheck("invalid", time.Since(start))
				respond.Detail(w, http.StatusUnauthorized, "Invalid token.")
				return
			}

			RecordAuthCheck("valid", time.Since(start))
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireUser rejects anonymous requests with 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ClaimsFromContext(r.Context()); !ok {
			respond.Detail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUserFunc is RequireUser for handler functions.
func RequireUserFunc(fn http.HandlerFunc) http.Handler {
	return RequireUser(fn)
}

// extractToken accepts "Token <t>" and "Bearer <t>" (scheme is case-insensitive).
func extractToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.Contains(token, " ") {
		return "", false
	}
	switch strings.ToLower(scheme) {
	case "token", "bearer":
		return token, true
	}
	return "", false
}
