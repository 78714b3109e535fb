package analysis

import (
	"fmt"
	"strings"
)

// Mode selects the candidate word set of an analysis.
type Mode string

const (
	// ModeArticle compares the words found in the crawled articles.
	ModeArticle Mode = "article"

	// ModeLanguage compares the most frequent words of the reference language.
	ModeLanguage Mode = "language"
)

// ParseMode converts a mode name into a Mode. Matching ignores case.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeArticle, ModeLanguage:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// String returns the mode name.
func (m Mode) String() string {
	return string(m)
}
