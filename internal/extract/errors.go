package extract

import "errors"

var (
	// ErrNoContent is returned when the page has no main content region.
	ErrNoContent = errors.New("no content found")

	// ErrTableNotFound is returned when a requested table index does not exist.
	ErrTableNotFound = errors.New("table not found")
)
