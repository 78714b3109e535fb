package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/wikifreq/internal/model"
)

// DefaultArticlePath is the URL path prefix of article pages.
const DefaultArticlePath = "/"

// DefaultBlockedNamespaces are namespace prefixes whose pages are not
// article content. "datei" is the German name of the file namespace.
var DefaultBlockedNamespaces = []string{
	"file", "image", "category", "special", "help", "talk",
	"user", "user talk", "template", "template talk",
	"mediawiki", "mediawiki talk", "module", "module talk",
	"portal", "draft", "timedtext", "mailto", "tel", "javascript", "datei",
}

// LinkExtractor collects intra-wiki article links from page markup.
// A LinkExtractor is immutable after construction and safe for concurrent use.
type LinkExtractor struct {
	articlePath string
	host        string
	selector    string
	blocked     map[string]struct{}
}

// LinkOption configures a LinkExtractor.
type LinkOption func(*LinkExtractor)

// WithArticlePath sets the URL path prefix of article pages, such as "/wiki/".
func WithArticlePath(prefix string) LinkOption {
	return func(e *LinkExtractor) {
		if prefix == "" {
			return
		}
		if !strings.HasPrefix(prefix, "/") {
			prefix = "/" + prefix
		}
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		e.articlePath = prefix
	}
}

// WithHost sets the wiki host name. Absolute links to this host are treated
// like relative ones; links to any other host are external.
func WithHost(host string) LinkOption {
	return func(e *LinkExtractor) {
		e.host = strings.ToLower(host)
	}
}

// WithLinkSelector sets the CSS selector of the content region.
func WithLinkSelector(selector string) LinkOption {
	return func(e *LinkExtractor) {
		if selector != "" {
			e.selector = selector
		}
	}
}

// WithBlockedNamespaces replaces the blocked namespace set.
// Matching is case-insensitive and treats underscores as spaces.
func WithBlockedNamespaces(namespaces []string) LinkOption {
	return func(e *LinkExtractor) {
		e.blocked = namespaceSet(namespaces)
	}
}

// NewLinkExtractor creates a LinkExtractor with the default article path,
// content selector and blocked namespaces.
func NewLinkExtractor(opts ...LinkOption) *LinkExtractor {
	e := &LinkExtractor{
		articlePath: DefaultArticlePath,
		selector:    DefaultContentSelector,
		blocked:     namespaceSet(DefaultBlockedNamespaces),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func namespaceSet(namespaces []string) map[string]struct{} {
	set := make(map[string]struct{}, len(namespaces))
	for _, ns := range namespaces {
		key := strings.ToLower(model.NewPageID(ns).String())
		if key != "" {
			set[key] = struct{}{}
		}
	}
	return set
}

// Extract returns the distinct article titles linked from the content
// region of markup, in first-seen order.
//
// Dropped links: external links, fragment-only and query-only links,
// links to script entry points, red links to missing pages and links
// whose namespace prefix is blocked.
func (e *LinkExtractor) Extract(markup string) []model.PageID {
	region := contentRegion(markup, e.selector)
	links := make([]model.PageID, 0)
	if region.Length() == 0 {
		return links
	}

	seen := make(map[model.PageID]struct{})
	region.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		if a.HasClass("new") {
			return
		}
		href, _ := a.Attr("href")
		id, ok := e.resolve(href)
		if !ok {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		links = append(links, id)
	})
	return links
}

// resolve maps an href to a page title. ok is false when the href is not
// an internal content link.
func (e *LinkExtractor) resolve(href string) (model.PageID, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "?") {
		return "", false
	}
	href = cutSuffixes(href)

	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if u.Host != "" && (e.host == "" || strings.ToLower(u.Hostname()) != e.host) {
		return "", false
	}

	// u.Path is already percent-decoded.
	title, found := strings.CutPrefix(u.Path, e.articlePath)
	if !found || strings.HasSuffix(strings.ToLower(title), ".php") {
		return "", false
	}

	id := model.NewPageID(cutSuffixes(title))
	if id.IsEmpty() || e.isBlocked(id) {
		return "", false
	}
	return id, true
}

// isBlocked reports whether the title's namespace prefix is blocked.
func (e *LinkExtractor) isBlocked(id model.PageID) bool {
	ns := id.Namespace()
	if ns == "" {
		return false
	}
	_, blocked := e.blocked[strings.ToLower(model.NewPageID(ns).String())]
	return blocked
}

// cutSuffixes drops everything from the first '#' or '?'.
func cutSuffixes(s string) string {
	if i := strings.IndexAny(s, "#?"); i >= 0 {
		return s[:i]
	}
	return s
}
