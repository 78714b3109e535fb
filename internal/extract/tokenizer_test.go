package extract

import (
	"reflect"
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"
)

func wrapContent(body string) string {
	return `<html><head><title>t</title><script>var leaked = "script words";</script></head><body>
<div id="mw-navigation">Navigation Menu Words</div>
<div id="mw-content-text">` + body + `</div>
<div id="footer">Footer Words</div>
</body></html>`
}

func TestTokenizeText(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "dash punctuation digits and case",
			input:    "It's—the BEST! 123 day.",
			expected: []string{"it's", "the", "best", "day"},
		},
		{
			name:     "single characters dropped",
			input:    "a b cd e",
			expected: []string{"cd"},
		},
		{
			name:     "leading and trailing apostrophes stripped",
			input:    "'quoted' rock'n'roll ''",
			expected: []string{"quoted", "rock'n'roll"},
		},
		{
			name:     "typographic apostrophe folds to ascii",
			input:    "Don’t stop",
			expected: []string{"don't", "stop"},
		},
		{
			name:     "extended punctuation becomes whitespace",
			input:    "«Golden»“Walnut”…island–parrot",
			expected: []string{"golden", "walnut", "island", "parrot"},
		},
		{
			name:     "alphanumeric tokens kept",
			input:    "1st 2nd 3000 4'0",
			expected: []string{"1st", "2nd"},
		},
		{
			name:     "non latin letters kept",
			input:    "Straße ÜBER über",
			expected: []string{"straße", "über", "über"},
		},
		{
			name:     "empty input",
			input:    "",
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := TokenizeText(tc.input)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("TokenizeText(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestTokenizeTextProperties(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Hello, World! 42 is the answer; isn't it?",
		"(parenthesised) [bracketed] {braced} <angled> x-y z_z",
		"!!! ??? ... --- 12 34 5",
		"émigré café naïve — “quoted” ‘single’",
	}

	for _, input := range inputs {
		for _, tok := range TokenizeText(input) {
			if utf8.RuneCountInString(tok) <= 1 {
				t.Errorf("token %q is too short", tok)
			}
			if isNumeric(tok) {
				t.Errorf("token %q is purely numeric", tok)
			}
			if strings.HasPrefix(tok, "'") || strings.HasSuffix(tok, "'") {
				t.Errorf("token %q has outer apostrophe", tok)
			}
			for _, r := range tok {
				if r != '\'' && !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.IsMark(r) {
					t.Errorf("token %q contains punctuation %q", tok, r)
				}
			}
			if tok != strings.ToLower(tok) {
				t.Errorf("token %q is not lowercased", tok)
			}
		}
	}
}

func TestTokenizerTokenize(t *testing.T) {
	t.Parallel()

	t.Run("reads only the content region", func(t *testing.T) {
		t.Parallel()

		markup := wrapContent(`<p>Golden <b>Wal</b>nuts grow here.</p><p>Parrots</p>`)
		got := NewTokenizer().Tokenize(markup)
		expected := []string{"golden", "walnuts", "grow", "here", "parrots"}
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("got %q, expected %q", got, expected)
		}
	})

	t.Run("excludes scripts edit links and references", func(t *testing.T) {
		t.Parallel()

		markup := wrapContent(`<h2>History<span class="mw-editsection">[edit source]</span></h2>
<p>Island<sup class="reference">[1]</sup> trade</p>
<script>ignored tokens</script><style>.x{color:red}</style>
<table class="navbox"><tr><td>Navbox Entry</td></tr></table>`)
		got := NewTokenizer().Tokenize(markup)
		expected := []string{"history", "island", "trade"}
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("got %q, expected %q", got, expected)
		}
	})

	t.Run("missing content region yields no tokens", func(t *testing.T) {
		t.Parallel()

		got := NewTokenizer().Tokenize(`<html><body><p>Only chrome here</p></body></html>`)
		if len(got) != 0 {
			t.Errorf("expected no tokens, got %q", got)
		}
	})

	t.Run("custom selector", func(t *testing.T) {
		t.Parallel()

		markup := `<html><body><main><p>Custom region</p></main></body></html>`
		got := NewTokenizer(WithTokenizerSelector("main")).Tokenize(markup)
		expected := []string{"custom", "region"}
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("got %q, expected %q", got, expected)
		}
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		t.Parallel()

		markup := wrapContent(`<p>Same words, same order.</p>`)
		tok := NewTokenizer()
		if !reflect.DeepEqual(tok.Tokenize(markup), tok.Tokenize(markup)) {
			t.Error("expected identical output")
		}
	})
}
