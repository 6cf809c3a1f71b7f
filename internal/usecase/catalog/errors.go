// Package catalog serves the read-only tag and ingredient lists and the
// bulk imports used by foodgramctl.
package catalog

import "errors"

var (
	// ErrTagNotFound is returned when the requested tag does not exist.
	ErrTagNotFound = errors.New("tag not found")

	// ErrIngredientNotFound is returned when the requested ingredient does not exist.
	ErrIngredientNotFound = errors.New("ingredient not found")
)
