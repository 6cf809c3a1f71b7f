package user

import (
	"errors"
	"net/http"
	"strconv"

	"foodgram/internal/handler/http/respond"
	userUC "foodgram/internal/usecase/user"
)

// writeError maps use case errors to responses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, userUC.ErrUserNotFound):
		respond.Detail(w, http.StatusNotFound, "Not found.")
	case errors.Is(err, userUC.ErrEmailTaken):
		respond.FieldErrors(w, map[string][]string{"email": {err.Error()}})
	case errors.Is(err, userUC.ErrUsernameTaken):
		respond.FieldErrors(w, map[string][]string{"username": {err.Error()}})
	case errors.Is(err, userUC.ErrWrongPassword):
		respond.FieldErrors(w, map[string][]string{"current_password": {err.Error()}})
	case errors.Is(err, userUC.ErrSelfSubscription),
		errors.Is(err, userUC.ErrAlreadySubscribed),
		errors.Is(err, userUC.ErrNotSubscribed):
		respond.Error(w, http.StatusBadRequest, err)
	case respond.ValidationError(w, err):
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}

// recipesLimit parses the optional recipes_limit query parameter (0 = all).
func recipesLimit(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("recipes_limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
