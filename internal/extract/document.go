package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// DefaultContentSelector selects the article body of a MediaWiki page.
const DefaultContentSelector = "#mw-content-text"

// chromeSelector lists the elements inside the content region that are not
// article prose: scripts, edit links, footnote markers and navigation boxes.
const chromeSelector = "script, style, noscript, .mw-editsection, sup.reference, " +
	".navbox, .toc, #toc, .mw-references-wrap, .printfooter, .catlinks"

// blockElements get a separating space around their text so that words in
// adjacent paragraphs or cells are not glued together.
var blockElements = map[string]bool{
	"address": true, "article": true, "blockquote": true, "br": true, "caption": true,
	"dd": true, "div": true, "dl": true, "dt": true, "figcaption": true, "figure": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true, "hr": true,
	"li": true, "ol": true, "p": true, "pre": true, "section": true, "table": true,
	"tbody": true, "td": true, "tfoot": true, "th": true, "thead": true, "tr": true, "ul": true,
}

// contentRegion parses markup and returns the first element matching
// selector. The returned selection is empty when the markup cannot be
// parsed or the region does not exist.
func contentRegion(markup, selector string) *goquery.Selection {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return &goquery.Selection{}
	}
	if selector == "" {
		selector = DefaultContentSelector
	}
	return doc.Find(selector).First()
}

// stripChrome removes non-prose elements from the region in place.
func stripChrome(region *goquery.Selection) {
	region.Find(chromeSelector).Remove()
}

// nodeText collects the visible text below the given nodes.
func nodeText(nodes []*html.Node) string {
	var sb strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.CommentNode:
			return
		case html.ElementNode:
			if blockElements[n.Data] {
				sb.WriteByte(' ')
				defer sb.WriteByte(' ')
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range nodes {
		walk(n)
	}
	return sb.String()
}

// collapseSpace trims s and replaces whitespace runs with a single space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
