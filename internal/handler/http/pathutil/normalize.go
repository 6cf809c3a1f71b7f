package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern maps a dynamic route to the template used as a metrics label.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns are matched against paths with the trailing slash removed.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/api/recipes/\d+$`), Template: "/api/recipes/:id/"},
	{Pattern: regexp.MustCompile(`^/api/recipes/\d+/favorite$`), Template: "/api/recipes/:id/favorite/"},
	{Pattern: regexp.MustCompile(`^/api/recipes/\d+/shopping_cart$`), Template: "/api/recipes/:id/shopping_cart/"},
	{Pattern: regexp.MustCompile(`^/api/recipes/\d+/get-link$`), Template: "/api/recipes/:id/get-link/"},

	{Pattern: regexp.MustCompile(`^/api/users/\d+$`), Template: "/api/users/:id/"},
	{Pattern: regexp.MustCompile(`^/api/users/\d+/subscribe$`), Template: "/api/users/:id/subscribe/"},

	{Pattern: regexp.MustCompile(`^/api/tags/\d+$`), Template: "/api/tags/:id/"},
	{Pattern: regexp.MustCompile(`^/api/ingredients/\d+$`), Template: "/api/ingredients/:id/"},

	// 短縮リンク
	{Pattern: regexp.MustCompile(`^/s/[0-9A-Za-z]+$`), Template: "/s/:code"},
}

// NormalizePath collapses IDs and short-link codes so that every route yields
// one metrics label. Query strings are dropped and API paths are reported with
// a single trailing slash. Unknown paths are returned unchanged.
//
//	NormalizePath("/api/recipes/123/")              // "/api/recipes/:id/"
//	NormalizePath("/api/recipes/123/shopping_cart") // "/api/recipes/:id/shopping_cart/"
//	NormalizePath("/api/recipes/?page=2")           // "/api/recipes/"
//	NormalizePath("/s/Uk3fQz")                      // "/s/:code"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	trimmed := path
	if len(trimmed) > 1 && trimmed[len(trimmed)-1] == '/' {
		trimmed = trimmed[:len(trimmed)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(trimmed) {
			return p.Template
		}
	}

	if strings.HasPrefix(trimmed, "/api/") {
		return trimmed + "/"
	}
	return trimmed
}

// GetExpectedCardinality returns the approximate number of distinct labels
// NormalizePath produces for known routes.
func GetExpectedCardinality() int {
	const staticCount = 16 // /api/recipes/, /api/users/me/, /health, /metrics, ...
	return len(pathPatterns) + staticCount
}
