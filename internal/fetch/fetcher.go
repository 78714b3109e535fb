package fetch

import (
	"context"
	"errors"
	"fmt"

	"github.com/nao1215/wikifreq/internal/model"
)

// PageFetcher returns the raw markup of a wiki page.
// Implementations must return an *Error on failure.
type PageFetcher interface {
	Fetch(ctx context.Context, id model.PageID) (string, error)
}

var (
	// ErrNotFound is wrapped by errors for pages that do not exist.
	ErrNotFound = errors.New("page not found")

	// ErrHTTPStatus is wrapped by errors for unsuccessful HTTP responses.
	ErrHTTPStatus = errors.New("unexpected HTTP status")

	// ErrEmptyPage is wrapped by errors for an empty page title.
	ErrEmptyPage = errors.New("empty page title")
)

// Error describes a failed fetch of one page.
type Error struct {
	// Page is the title that was requested.
	Page model.PageID

	// Source is the URL or file path the fetcher tried to read.
	Source string

	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch %q from %s (status %d): %v", e.Page, e.Source, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("failed to fetch %q from %s: %v", e.Page, e.Source, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}
