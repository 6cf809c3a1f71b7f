package http

import (
	"net/http"
	"strings"
)

// Directive is one Content-Security-Policy directive and its sources.
type Directive struct {
	Name    string
	Sources []string
}

// Policy is an ordered Content-Security-Policy.
type Policy []Directive

// String renders the header value, skipping directives without sources.
func (p Policy) String() string {
	parts := make([]string, 0, len(p))
	for _, d := range p {
		if len(d.Sources) == 0 {
			continue
		}
		parts = append(parts, d.Name+" "+strings.Join(d.Sources, " "))
	}
	return strings.Join(parts, "; ")
}

// APIPolicy fits JSON and text/plain responses that load nothing.
var APIPolicy = Policy{
	{"default-src", []string{"'none'"}},
	{"frame-ancestors", []string{"'none'"}},
	{"base-uri", []string{"'none'"}},
	{"form-action", []string{"'none'"}},
}

// SwaggerPolicy lets the bundled Swagger UI run its inline bootstrap script.
var SwaggerPolicy = Policy{
	{"default-src", []string{"'self'"}},
	{"script-src", []string{"'self'", "'unsafe-inline'"}},
	{"style-src", []string{"'self'", "'unsafe-inline'"}},
	{"img-src", []string{"'self'", "data:"}},
	{"connect-src", []string{"'self'"}},
	{"frame-ancestors", []string{"'none'"}},
	{"object-src", []string{"'none'"}},
}

// SecurityHeaders sets CSP and the usual hardening headers. /swagger/
// gets SwaggerPolicy, everything else APIPolicy.
func SecurityHeaders(next http.Handler) http.Handler {
	api, swagger := APIPolicy.String(), SwaggerPolicy.String()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		if strings.HasPrefix(r.URL.Path, "/swagger/") {
			h.Set("Content-Security-Policy", swagger)
		} else {
			h.Set("Content-Security-Policy", api)
		}
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}
