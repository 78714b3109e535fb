package analysis

import "errors"

var (
	// ErrInvalidMode is returned for a mode other than article or language.
	ErrInvalidMode = errors.New("invalid mode: must be article or language")

	// ErrInvalidCount is returned when the requested row count is not positive.
	ErrInvalidCount = errors.New("invalid count: must be positive")

	// ErrCorpusNotFound is returned when the reference corpus file does not exist.
	ErrCorpusNotFound = errors.New("reference corpus not found")

	// ErrInvalidCorpus is returned when a corpus file line cannot be parsed.
	ErrInvalidCorpus = errors.New("invalid reference corpus")
)
