package pathutil

import (
	"errors"
	"net/http"
	"strconv"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses a positive int64 path segment.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// PathID parses the ServeMux wildcard name of r as an ID.
//
//	mux.Handle("GET /api/recipes/{id}/", h)
//	id, err := pathutil.PathID(r, "id")
func PathID(r *http.Request, name string) (int64, error) {
	return ParseID(r.PathValue(name))
}
