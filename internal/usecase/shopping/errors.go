// Package shopping builds the aggregated shopping list for a user's cart
// and renders it as a downloadable text report.
package shopping

import "errors"

// ErrStorageUnavailable indicates that the cart or ingredient rows could not be read.
// The cause is wrapped alongside it; callers map it to a 5xx response.
var ErrStorageUnavailable = errors.New("storage unavailable")
