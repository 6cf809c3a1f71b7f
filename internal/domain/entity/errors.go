package entity

import "errors"

// Repositories and services wrap these; handlers map them with errors.Is.
var (
	// ErrNotFound: no user, recipe, tag or ingredient with the requested id.
	ErrNotFound = errors.New("not found")

	// ErrValidationFailed matches every *ValidationError.
	ErrValidationFailed = errors.New("invalid field value")

	// ErrConflict is a unique violation: a taken email or username, a recipe
	// already in the favorites or cart, a repeated subscription.
	ErrConflict = errors.New("already exists")
)

// ValidationError rejects one field of a user, recipe or catalog entry.
// Field uses the JSON name so handlers can return it as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is lets errors.Is(err, ErrValidationFailed) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
