package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Tokenizer extracts normalized word tokens from the main content region
// of a page.
//
// A token is lowercased, contains only letters, digits, combining marks
// and inner apostrophes, is longer than one rune and is not purely numeric.
type Tokenizer struct {
	selector string
}

// TokenizerOption configures a Tokenizer.
type TokenizerOption func(*Tokenizer)

// WithTokenizerSelector sets the CSS selector of the content region.
func WithTokenizerSelector(selector string) TokenizerOption {
	return func(t *Tokenizer) {
		if selector != "" {
			t.selector = selector
		}
	}
}

// NewTokenizer creates a Tokenizer reading the default MediaWiki content region.
func NewTokenizer(opts ...TokenizerOption) *Tokenizer {
	t := &Tokenizer{selector: DefaultContentSelector}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokenize returns the word tokens of the page's content region in
// document order. Markup without a content region yields no tokens.
func (t *Tokenizer) Tokenize(markup string) []string {
	region := contentRegion(markup, t.selector)
	if region.Length() == 0 {
		return []string{}
	}
	stripChrome(region)
	return TokenizeText(nodeText(region.Nodes))
}

// TokenizeText splits plain text into word tokens.
func TokenizeText(text string) []string {
	text = norm.NFC.String(text)
	text = cases.Lower(language.Und).String(text)
	text = strings.Map(separate, text)

	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if utf8.RuneCountInString(f) <= 1 || isNumeric(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// separate maps every rune that cannot be part of a word to a space.
// Typographic apostrophes fold into the ASCII one so that "it’s" and
// "it's" count as the same word. Curly quotes, guillemets, dashes and
// ellipses are punctuation and therefore separators.
func separate(r rune) rune {
	switch {
	case r == '\'':
		return r
	case r == '’', r == 'ʼ', r == '＇':
		return '\''
	case unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsMark(r):
		return r
	default:
		return ' '
	}
}

// isNumeric reports whether every rune in s is a number, ignoring apostrophes.
func isNumeric(s string) bool {
	for _, r := range s {
		if r != '\'' && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}
