package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"golang.org/x/text/language"

	"github.com/nao1215/wikifreq/internal/analysis"
)

// Page sources.
const (
	// SourceRemote fetches pages from the wiki over HTTP.
	SourceRemote = "remote"

	// SourceFile reads saved pages from LocalDir.
	SourceFile = "file"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "wikifreq"

	// DefaultWikiURL is the wiki crawled when none is configured.
	DefaultWikiURL = "https://stardewvalleywiki.com"

	// DefaultArticlePath is the URL path prefix of article pages.
	DefaultArticlePath = "/"

	// DefaultLocalDir holds saved pages for the file source.
	DefaultLocalDir = "local_page"

	// DefaultTimeout bounds a single page request.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent identifies wikifreq in HTTP requests so wiki
	// operators can recognize crawler traffic.
	DefaultUserAgent = "wikifreq/1.0 (+https://github.com/nao1215/wikifreq)"

	// DefaultMaxBodySize limits the response body read per page.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB

	// DefaultCrawlDelay is the pause after each fetched page.
	DefaultCrawlDelay = 1 * time.Second

	// DefaultCrawlDepth is the number of link hops followed from the start
	// page. Depth 0 fetches only the start page.
	DefaultCrawlDepth = 2

	// DefaultMaxPages of 0 means the crawl is bounded by depth only.
	DefaultMaxPages = 0

	// DefaultConcurrency is the number of parallel fetches in count.
	DefaultConcurrency = 4

	// DefaultStorePath is the frequency store, relative to the working directory.
	DefaultStorePath = "word-counts.json"

	// DefaultLanguage is the reference corpus language.
	DefaultLanguage = "en"

	// DefaultMode is the analysis mode.
	DefaultMode = "language"

	// DefaultCount is the number of analysis rows printed.
	DefaultCount = 10
)

// Config holds all configuration options for wikifreq.
// It is populated from defaults, the config file, the environment and CLI
// flags, then passed to commands explicitly.
type Config struct {
	// WikiURL is the scheme and host of the wiki, e.g. https://stardewvalleywiki.com.
	WikiURL string

	// ArticlePath is the URL path prefix of articles, e.g. "/" or "/wiki/".
	ArticlePath string

	// Source selects where page markup comes from: SourceRemote or SourceFile.
	Source string

	// LocalDir holds saved pages named <Title_With_Underscores>.html.
	LocalDir string

	// ContentSelector overrides the CSS selector of the article body.
	// Empty means the MediaWiki default.
	ContentSelector string

	// BlockedNamespaces replaces the default list of skipped namespaces.
	// Nil keeps the default.
	BlockedNamespaces []string

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes.
	// 0 means the fetcher default.
	MaxBodySize int

	// CrawlDelay is the pause after each successfully processed page.
	CrawlDelay time.Duration

	// CrawlDepth is the number of link hops followed from the start page.
	CrawlDepth int

	// MaxPages stops a crawl after this many pages. 0 means no limit.
	MaxPages int

	// Concurrency is the number of parallel fetches in count.
	Concurrency int

	// StorePath is the JSON frequency store.
	StorePath string

	// DBDir is the directory of the crawl history database.
	// Defaults to the XDG data directory.
	DBDir string

	// SaveToDB records crawl and count runs in the history database.
	SaveToDB bool

	// Language is the BCP 47 tag of the reference corpus.
	Language string

	// ReferenceDir holds reference corpora named <language>.txt.
	ReferenceDir string

	// Mode is the default analysis mode: "article" or "language".
	Mode string

	// Count is the default number of analysis rows.
	Count int

	// Verbose enables debug logging.
	Verbose bool

	// Quiet limits logging to warnings and errors.
	Quiet bool

	// ConfigFilePath is the configuration file in use, if any.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		WikiURL:      DefaultWikiURL,
		ArticlePath:  DefaultArticlePath,
		Source:       SourceRemote,
		LocalDir:     DefaultLocalDir,
		Timeout:      DefaultTimeout,
		UserAgent:    DefaultUserAgent,
		MaxBodySize:  DefaultMaxBodySize,
		CrawlDelay:   DefaultCrawlDelay,
		CrawlDepth:   DefaultCrawlDepth,
		MaxPages:     DefaultMaxPages,
		Concurrency:  DefaultConcurrency,
		StorePath:    DefaultStorePath,
		DBDir:        XDGDataDir(),
		SaveToDB:     true,
		Language:     DefaultLanguage,
		ReferenceDir: XDGReferenceDir(),
		Mode:         DefaultMode,
		Count:        DefaultCount,
	}
}

// XDGDataDir returns the XDG data directory for wikifreq.
// On Linux: ~/.local/share/wikifreq
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for wikifreq.
// On Linux: ~/.config/wikifreq
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGReferenceDir returns the default directory of reference corpora.
// On Linux: ~/.local/share/wikifreq/reference
func XDGReferenceDir() string {
	return filepath.Join(XDGDataDir(), "reference")
}

// Validate checks if the configuration is valid.
// It returns the first problem found, wrapped around a sentinel error.
func (c *Config) Validate() error {
	if c.Source != SourceRemote && c.Source != SourceFile {
		return fmt.Errorf("%w: %q", ErrInvalidSource, c.Source)
	}

	// The wiki URL matters for the file source too: it scopes links.
	u, err := url.Parse(c.WikiURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidWikiURL, c.WikiURL)
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.CrawlDelay < 0 {
		return ErrInvalidCrawlDelay
	}
	if c.CrawlDepth < 0 {
		return ErrInvalidDepth
	}
	if c.MaxPages < 0 {
		return ErrInvalidMaxPages
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if strings.TrimSpace(c.StorePath) == "" {
		return ErrEmptyStorePath
	}
	if _, err := analysis.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidMode, c.Mode)
	}
	if c.Count <= 0 {
		return ErrInvalidCount
	}
	if _, err := language.Parse(c.Language); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, c.Language)
	}

	return nil
}

// LanguageBase returns the base language code used to name reference
// corpora, e.g. "en" for "en-GB".
func (c *Config) LanguageBase() string {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return c.Language
	}
	base, _ := tag.Base()
	return base.String()
}

// CorpusPath returns the reference corpus file for the configured language.
func (c *Config) CorpusPath() string {
	return analysis.CorpusPath(c.ReferenceDir, c.LanguageBase())
}
