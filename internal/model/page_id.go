package model

import "strings"

// PageID is a canonical wiki page title.
// Two titles name the same page iff their canonical forms are equal, so
// PageID values are safe to use as set and map keys.
type PageID string

// NewPageID canonicalizes a raw title: surrounding whitespace is trimmed,
// underscores become spaces and runs of whitespace collapse to one space.
func NewPageID(title string) PageID {
	title = strings.ReplaceAll(title, "_", " ")
	return PageID(strings.Join(strings.Fields(title), " "))
}

// String returns the title in its display form.
func (p PageID) String() string {
	return string(p)
}

// Path returns the title in the form used in wiki URLs and local file
// names ("Golden Walnut" -> "Golden_Walnut").
func (p PageID) Path() string {
	return strings.ReplaceAll(string(p), " ", "_")
}

// IsEmpty reports whether the identifier has no title.
func (p PageID) IsEmpty() bool {
	return p == ""
}

// Namespace returns the text before the first ':' of the title, or an
// empty string when the title has no namespace prefix.
func (p PageID) Namespace() string {
	ns, _, found := strings.Cut(string(p), ":")
	if !found {
		return ""
	}
	return strings.TrimSpace(ns)
}
