package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/nao1215/wikifreq/internal/model"
)

// Default HTTP fetcher settings.
const (
	// DefaultTimeout bounds a single page request.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent identifies wikifreq in the wiki's access logs.
	DefaultUserAgent = "wikifreq/1.0 (+https://github.com/nao1215/wikifreq)"

	// DefaultMaxBodySize caps the size of a downloaded page.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB
)

// HTTPFetcher downloads pages from a live wiki.
// Page URLs are built as <baseURL><articlePath><Title_With_Underscores>.
type HTTPFetcher struct {
	base        *url.URL
	articlePath string
	collector   *colly.Collector
}

// HTTPOption configures an HTTPFetcher.
type HTTPOption func(*httpSettings)

type httpSettings struct {
	articlePath string
	userAgent   string
	timeout     time.Duration
	maxBodySize int
	transport   http.RoundTripper
}

// WithHTTPArticlePath sets the URL path prefix of article pages.
func WithHTTPArticlePath(prefix string) HTTPOption {
	return func(s *httpSettings) {
		s.articlePath = prefix
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) HTTPOption {
	return func(s *httpSettings) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *httpSettings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMaxBodySize sets the maximum number of body bytes read per page.
func WithMaxBodySize(n int) HTTPOption {
	return func(s *httpSettings) {
		if n > 0 {
			s.maxBodySize = n
		}
	}
}

// WithTransport replaces the HTTP transport used by the collector.
func WithTransport(rt http.RoundTripper) HTTPOption {
	return func(s *httpSettings) {
		s.transport = rt
	}
}

// NewHTTPFetcher creates an HTTPFetcher for the wiki at baseURL.
func NewHTTPFetcher(baseURL string, opts ...HTTPOption) (*HTTPFetcher, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid wiki URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid wiki URL %q: scheme must be http or https", baseURL)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("invalid wiki URL %q: missing host", baseURL)
	}

	s := &httpSettings{
		articlePath: "/",
		userAgent:   DefaultUserAgent,
		timeout:     DefaultTimeout,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if !strings.HasPrefix(s.articlePath, "/") {
		s.articlePath = "/" + s.articlePath
	}
	if !strings.HasSuffix(s.articlePath, "/") {
		s.articlePath += "/"
	}

	c := colly.NewCollector(
		colly.UserAgent(s.userAgent),
		colly.AllowURLRevisit(),
		colly.MaxBodySize(s.maxBodySize),
		colly.ParseHTTPErrorResponse(),
	)
	if s.transport != nil {
		c.WithTransport(s.transport)
	}
	c.SetRequestTimeout(s.timeout)

	return &HTTPFetcher{
		base:        base,
		articlePath: s.articlePath,
		collector:   c,
	}, nil
}

// URL returns the address the page is fetched from.
func (f *HTTPFetcher) URL(id model.PageID) string {
	u := *f.base
	u.Path = f.base.Path + f.articlePath + id.Path()
	return u.String()
}

// Host returns the wiki host name.
func (f *HTTPFetcher) Host() string {
	return f.base.Hostname()
}

// Fetch downloads the page. Responses with a status of 400 or above are
// errors; 404 wraps ErrNotFound.
func (f *HTTPFetcher) Fetch(ctx context.Context, id model.PageID) (string, error) {
	target := f.URL(id)
	if id.IsEmpty() {
		return "", &Error{Page: id, Source: target, Err: ErrEmptyPage}
	}

	c := f.collector.Clone()
	c.Context = ctx

	var (
		body   []byte
		status int
	)
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
		status = r.StatusCode
	})

	if err := c.Visit(target); err != nil {
		return "", &Error{Page: id, Source: target, Err: err}
	}

	switch {
	case status == http.StatusNotFound:
		return "", &Error{Page: id, Source: target, StatusCode: status, Err: ErrNotFound}
	case status >= http.StatusBadRequest:
		return "", &Error{Page: id, Source: target, StatusCode: status, Err: ErrHTTPStatus}
	}
	return string(body), nil
}
