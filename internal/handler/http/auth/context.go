package auth

import (
	"context"

	authservice "foodgram/internal/service/auth"
)

type ctxKey string

const ctxClaims ctxKey = "auth_claims"

// WithClaims stores verified claims in ctx.
func WithClaims(ctx context.Context, c *authservice.Claims) context.Context {
	return context.WithValue(ctx, ctxClaims, c)
}

// ClaimsFromContext returns the claims of an authenticated request.
func ClaimsFromContext(ctx context.Context) (*authservice.Claims, bool) {
	c, ok := ctx.Value(ctxClaims).(*authservice.Claims)
	return c, ok && c != nil
}

// UserID returns the authenticated user id, or 0 for anonymous requests.
func UserID(ctx context.Context) int64 {
	if c, ok := ClaimsFromContext(ctx); ok {
		return c.UserID
	}
	return 0
}
