package crawler

import "errors"

var (
	// ErrEmptyStart is returned when Crawl is called with an empty start page.
	ErrEmptyStart = errors.New("start page is empty")

	// ErrNoPages is returned when BatchCounter is given no pages.
	ErrNoPages = errors.New("no pages to count")
)
