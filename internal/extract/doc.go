// Package extract turns raw MediaWiki page markup into the values the rest
// of wikifreq works with: word tokens, intra-wiki links, the lead summary
// paragraph and content tables.
//
// Every function in this package is pure. Markup that lacks the expected
// structure yields empty results instead of errors, because a long crawl
// should keep the partial data it can get. The only exception is Summary,
// which reports ErrNoContent when the page has no content region at all.
//
// The content region is located with goquery (CSS selectors) and its text
// is collected by walking the golang.org/x/net/html node tree.
package extract
