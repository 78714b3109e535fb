package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so callers can use
// errors.Is() while still getting a readable message.
var (
	// ErrInvalidWikiURL is returned when the wiki URL is not an absolute
	// http or https URL.
	ErrInvalidWikiURL = errors.New("invalid wiki URL: must be an absolute http(s) URL")

	// ErrInvalidSource is returned for a page source other than remote or file.
	ErrInvalidSource = errors.New("invalid source: must be \"remote\" or \"file\"")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidCrawlDelay is returned when the crawl delay is negative.
	// Use 0 for no delay between requests.
	ErrInvalidCrawlDelay = errors.New("invalid crawl delay: must be non-negative")

	// ErrInvalidDepth is returned when the crawl depth is negative.
	ErrInvalidDepth = errors.New("invalid crawl depth: must be non-negative")

	// ErrInvalidMaxPages is returned when the page limit is negative.
	// Use 0 for no limit.
	ErrInvalidMaxPages = errors.New("invalid max pages: must be non-negative")

	// ErrInvalidConcurrency is returned when the fetch concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrEmptyStorePath is returned when no frequency store path is set.
	ErrEmptyStorePath = errors.New("invalid store path: must not be empty")

	// ErrInvalidMode is returned for an analysis mode other than article or language.
	ErrInvalidMode = errors.New("invalid mode: must be \"article\" or \"language\"")

	// ErrInvalidCount is returned when the analysis row count is not positive.
	ErrInvalidCount = errors.New("invalid count: must be positive")

	// ErrInvalidLanguage is returned when the language is not a BCP 47 tag.
	ErrInvalidLanguage = errors.New("invalid language: must be a BCP 47 language tag")

	// ErrInvalidEnv is returned when a WIKIFREQ_* variable cannot be parsed.
	ErrInvalidEnv = errors.New("invalid environment variable")
)
