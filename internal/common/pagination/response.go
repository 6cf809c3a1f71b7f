package pagination

import (
	"net/http"
	"net/url"
	"strconv"
)

// Page is the list envelope returned by paginated endpoints.
// Next and Previous are absolute URLs, or null at either end.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPage builds the envelope for results of the page described by params.
// Links keep every other query parameter of r (filters, recipes_limit, ...).
func NewPage[T any](r *http.Request, params Params, total int64, results []T) Page[T] {
	if results == nil {
		results = []T{}
	}
	p := Page[T]{Count: total, Results: results}
	if params.ByOffset() {
		setOffsetLinks(&p, r, params, total)
		return p
	}
	if HasNext(params.Page, params.Limit, total) {
		next := pageURL(r, params.Page+1)
		p.Next = &next
	}
	if params.Page > 1 {
		prev := pageURL(r, params.Page-1)
		p.Previous = &prev
	}
	return p
}

func setOffsetLinks[T any](p *Page[T], r *http.Request, params Params, total int64) {
	offset := params.Offset()
	if int64(offset+params.Limit) < total {
		next := offsetURL(r, offset+params.Limit)
		p.Next = &next
	}
	if offset > 0 {
		prev := offsetURL(r, max(offset-params.Limit, 0))
		p.Previous = &prev
	}
}

func offsetURL(r *http.Request, offset int) string {
	u := baseURL(r)
	q := r.URL.Query()
	q.Del("page")
	// 先頭は offset を付けない
	if offset <= 0 {
		q.Del("offset")
	} else {
		q.Set("offset", strconv.Itoa(offset))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func baseURL(r *http.Request) url.URL {
	u := url.URL{
		Scheme: "http",
		Host:   r.Host,
		Path:   r.URL.Path,
	}
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		u.Scheme = "https"
	}
	return u
}

func pageURL(r *http.Request, page int) string {
	u := baseURL(r)
	q := r.URL.Query()
	// 1 ページ目は page パラメータを付けない
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
