package respond

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

// DecodeJSON decodes the request body into v. On failure it writes a 400
// (413 when the body exceeds the MaxBytesReader limit) and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	// go-json の Decoder は MaxBytesError を EOF に潰すので先に全部読む
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			Detail(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		Detail(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if len(bytes.TrimSpace(data)) == 0 {
		Detail(w, http.StatusBadRequest, "request body is required")
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		Detail(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
