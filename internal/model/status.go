package model

import "strings"

// PageStatus is the outcome of processing one page during a crawl.
type PageStatus int

const (
	// PageStatusOK means the page was fetched, tokenized and merged.
	PageStatusOK PageStatus = iota

	// PageStatusFailed means the fetch failed and the page was skipped.
	PageStatusFailed
)

// String returns a human-readable representation of the status.
func (s PageStatus) String() string {
	switch s {
	case PageStatusOK:
		return "ok"
	case PageStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ParsePageStatus converts the String form back into a PageStatus.
// Unknown values map to PageStatusFailed.
func ParsePageStatus(s string) PageStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ok":
		return PageStatusOK
	default:
		return PageStatusFailed
	}
}

// MarshalText encodes the status as its String form.
func (s PageStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status written by MarshalText.
func (s *PageStatus) UnmarshalText(text []byte) error {
	*s = ParsePageStatus(string(text))
	return nil
}
