package pathutil

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "recipe detail", path: "/api/recipes/123/", want: "/api/recipes/:id/"},
		{name: "recipe detail without slash", path: "/api/recipes/123", want: "/api/recipes/:id/"},
		{name: "favorite", path: "/api/recipes/5/favorite/", want: "/api/recipes/:id/favorite/"},
		{name: "cart", path: "/api/recipes/5/shopping_cart/", want: "/api/recipes/:id/shopping_cart/"},
		{name: "get link", path: "/api/recipes/5/get-link/", want: "/api/recipes/:id/get-link/"},
		{name: "user", path: "/api/users/7/", want: "/api/users/:id/"},
		{name: "subscribe", path: "/api/users/7/subscribe/", want: "/api/users/:id/subscribe/"},
		{name: "tag", path: "/api/tags/1/", want: "/api/tags/:id/"},
		{name: "ingredient", path: "/api/ingredients/99/", want: "/api/ingredients/:id/"},
		{name: "short link", path: "/s/Uk3fQz", want: "/s/:code"},
		{name: "download", path: "/api/recipes/download_shopping_cart/", want: "/api/recipes/download_shopping_cart/"},
		{name: "download without slash", path: "/api/recipes/download_shopping_cart", want: "/api/recipes/download_shopping_cart/"},
		{name: "users me", path: "/api/users/me/", want: "/api/users/me/"},
		{name: "list with query", path: "/api/recipes/?page=2&limit=6", want: "/api/recipes/"},
		{name: "health", path: "/health", want: "/health"},
		{name: "metrics", path: "/metrics", want: "/metrics"},
		{name: "root", path: "/", want: "/"},
		{name: "unknown", path: "/unknown/path/123", want: "/unknown/path/123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePath(tt.path); got != tt.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestGetExpectedCardinality(t *testing.T) {
	if got := GetExpectedCardinality(); got < len(pathPatterns) {
		t.Errorf("GetExpectedCardinality() = %d, want >= %d", got, len(pathPatterns))
	}
}

func BenchmarkNormalizePath(b *testing.B) {
	paths := []string{
		"/api/recipes/123/",
		"/api/recipes/123/shopping_cart/",
		"/api/recipes/download_shopping_cart/",
		"/api/users/me/",
		"/health",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = NormalizePath(paths[i%len(paths)])
	}
}
