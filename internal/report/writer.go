package report

import (
	"io"
	"strconv"

	"github.com/nao1215/wikifreq/internal/analysis"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Writer outputs an analysis result.
// Implementations write the result in a specific format.
type Writer interface {
	// Write outputs the result to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(result *analysis.Result) (int, error)
}

// MultiWriter writes to multiple Writers in order.
// Our Writer interface writes results, not raw bytes, so io.MultiWriter
// does not apply.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the result to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(result *analysis.Result) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// formatFrequency renders a normalized frequency with fixed precision.
func formatFrequency(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// modeTitle returns the report heading for a mode.
func modeTitle(result *analysis.Result) string {
	if result.Mode == analysis.ModeArticle {
		return "Most frequent words in the crawled articles"
	}
	return "Most frequent " + languageName(result.Language) + " words"
}

// languageName returns a display name for a language code, falling back to
// the code itself.
func languageName(code string) string {
	if code == "" {
		return "reference"
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	name := display.English.Tags().Name(tag)
	if name == "" {
		return code
	}
	return name
}
