// Package respond writes JSON responses in the shapes the Foodgram frontend
// expects: {"detail": "..."} for request-level errors and
// {"field": ["message", ...]} for validation errors.
package respond

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"foodgram/internal/domain/entity"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// ヘッダ送信済みなのでログのみ
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// NoContent writes 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Detail writes {"detail": msg}.
func Detail(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, map[string]string{"detail": msg})
}

// Error writes err's message as the detail.
func Error(w http.ResponseWriter, code int, err error) {
	Detail(w, code, err.Error())
}

// FieldErrors writes a 400 with per-field messages.
func FieldErrors(w http.ResponseWriter, fields map[string][]string) {
	JSON(w, http.StatusBadRequest, fields)
}

// ValidationError writes err as a field error when it wraps an
// entity.ValidationError and reports whether it did.
func ValidationError(w http.ResponseWriter, err error) bool {
	var ve *entity.ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	FieldErrors(w, map[string][]string{ve.Field: {ve.Message}})
	return true
}

// safeFragments mark messages that are fine to show to users.
var safeFragments = []string{
	"required",
	"invalid",
	"not found",
	"already",
	"must be",
	"cannot be",
	"too long",
	"not subscribed",
	"not in",
}

// SafeError sanitizes error messages before returning them to users.
// 5xx errors and messages that do not look user-facing are replaced with a
// generic text; the original is logged with secrets masked.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	isSafe := false
	lowerMsg := strings.ToLower(msg)
	for _, safe := range safeFragments {
		if strings.Contains(lowerMsg, safe) {
			isSafe = true
			break
		}
	}

	// 500 系は常に内部エラー扱い
	if code >= 500 {
		isSafe = false
	}

	if isSafe {
		Detail(w, code, msg)
		return
	}

	slog.Default().Error("request failed",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	if code == http.StatusServiceUnavailable {
		Detail(w, code, "service temporarily unavailable")
		return
	}
	Detail(w, code, "internal server error")
}
