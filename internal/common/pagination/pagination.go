// Package pagination implements page/limit pagination for list endpoints,
// limit/offset pagination for the user listings, and the
// {count, next, previous, results} response envelope.
package pagination

import (
	"fmt"
	"net/http"
	"strconv"

	"foodgram/internal/pkg/config"
)

// Config bounds the limit query parameter.
type Config struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultConfig returns limit=6, max=100.
func DefaultConfig() Config {
	return Config{DefaultLimit: 6, MaxLimit: 100}
}

// LoadFromEnv reads PAGINATION_DEFAULT_LIMIT and PAGINATION_MAX_LIMIT.
// Non-positive values keep the defaults.
func LoadFromEnv() Config {
	cfg := DefaultConfig()
	if v := config.GetEnvInt("PAGINATION_DEFAULT_LIMIT", cfg.DefaultLimit); v > 0 {
		cfg.DefaultLimit = v
	}
	if v := config.GetEnvInt("PAGINATION_MAX_LIMIT", cfg.MaxLimit); v > 0 {
		cfg.MaxLimit = v
	}
	cfg.DefaultLimit = min(cfg.DefaultLimit, cfg.MaxLimit)
	return cfg
}

// Params is a 1-based page and its size. Params parsed from ?offset=
// address rows directly and ignore Page.
type Params struct {
	Page  int
	Limit int

	skip     int
	byOffset bool
}

// AtOffset returns Params starting at row offset.
func AtOffset(offset, limit int) Params {
	return Params{Page: offset/max(limit, 1) + 1, Limit: limit, skip: offset, byOffset: true}
}

// Offset is the number of rows before the page.
func (p Params) Offset() int {
	if p.byOffset {
		return p.skip
	}
	return (p.Page - 1) * p.Limit
}

// ByOffset reports whether p came from ?offset=.
func (p Params) ByOffset() bool { return p.byOffset }

// HasNext reports whether rows remain after the given page.
func HasNext(page, limit int, total int64) bool {
	return int64(page)*int64(limit) < total
}

// ParseQueryParams reads ?page= and ?limit=. Missing values take the
// defaults; malformed or out-of-range values are an error.
func ParseQueryParams(r *http.Request, cfg Config) (Params, error) {
	p := Params{Page: 1, Limit: cfg.DefaultLimit}
	q := r.URL.Query()

	if s := q.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return p, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		p.Page = n
	}
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > cfg.MaxLimit {
			return p, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", cfg.MaxLimit)
		}
		p.Limit = n
	}
	return p, nil
}

// ParseOffsetQueryParams is ParseQueryParams plus ?offset=, which wins
// over ?page= when both are given.
func ParseOffsetQueryParams(r *http.Request, cfg Config) (Params, error) {
	p, err := ParseQueryParams(r, cfg)
	if err != nil {
		return p, err
	}
	s := r.URL.Query().Get("offset")
	if s == "" {
		return p, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return p, fmt.Errorf("invalid query parameter: offset must be a non-negative integer")
	}
	return AtOffset(n, p.Limit), nil
}
