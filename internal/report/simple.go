package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/wikifreq/internal/analysis"
	"github.com/nao1215/wikifreq/internal/crawler"
	"github.com/nao1215/wikifreq/internal/model"
)

const ruleWidth = 60

// SimpleWriter outputs human-readable text.
// Besides analysis results it renders crawl summaries and crawl history,
// which only make sense on a terminal.
type SimpleWriter struct {
	baseWriter

	// verbose adds per-level detail to crawl summaries.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the analysis result as an aligned table.
func (w *SimpleWriter) Write(result *analysis.Result) (int, error) {
	var sb strings.Builder

	writeRule(&sb, "=")
	sb.WriteString(modeTitle(result))
	sb.WriteString("\n")
	writeRule(&sb, "=")

	if len(result.Rows) == 0 {
		sb.WriteString("No words to compare.\n")
		return w.output.Write([]byte(sb.String()))
	}

	width := len("word")
	for _, row := range result.Rows {
		width = max(width, len([]rune(row.Word)))
	}

	fmt.Fprintf(&sb, "%-4s  %-*s  %10s  %10s\n", "#", width, "word", "article", "language")
	for i, row := range result.Rows {
		fmt.Fprintf(&sb, "%-4d  %-*s  %10s  %10s\n",
			i+1, width, row.Word, formatFrequency(row.Local), formatFrequency(row.Reference))
	}

	return w.output.Write([]byte(sb.String()))
}

// WriteCrawl outputs the outcome of a crawl.
func (w *SimpleWriter) WriteCrawl(result *crawler.Result) (int, error) {
	var sb strings.Builder

	writeRule(&sb, "-")
	sb.WriteString("CRAWL SUMMARY\n")
	writeRule(&sb, "-")

	fmt.Fprintf(&sb, "Pages visited: %d\n", len(result.Visited))
	fmt.Fprintf(&sb, "Pages failed:  %d\n", len(result.Failed))
	fmt.Fprintf(&sb, "Levels:        %d\n", result.Levels())
	fmt.Fprintf(&sb, "Tokens merged: %d\n", result.Tokens)
	fmt.Fprintf(&sb, "Stopped:       %s\n", result.StopReason)

	if len(result.Failed) > 0 {
		sb.WriteString("\nFailed pages:\n")
		for _, f := range result.Failed {
			fmt.Fprintf(&sb, "  [level %d] %s: %v\n", f.Level, f.Page, f.Err)
		}
	}

	if w.verbose {
		sb.WriteString("\nLevels:\n")
		for level, batch := range result.Batches {
			fmt.Fprintf(&sb, "  %d: %d pages\n", level, len(batch))
		}
	}

	return w.output.Write([]byte(sb.String()))
}

// WriteRuns outputs a list of recorded runs, newest first as given.
func (w *SimpleWriter) WriteRuns(runs []model.RunRecord) (int, error) {
	var sb strings.Builder

	if len(runs) == 0 {
		sb.WriteString("No runs recorded.\n")
		return w.output.Write([]byte(sb.String()))
	}

	fmt.Fprintf(&sb, "%-26s  %-5s  %-19s  %7s  %6s  %-17s  %s\n",
		"RUN", "KIND", "STARTED", "VISITED", "FAILED", "STOP", "START PAGE")
	for _, r := range runs {
		stop := r.StopReason
		if stop == "" {
			stop = "-"
		}
		fmt.Fprintf(&sb, "%-26s  %-5s  %-19s  %7d  %6d  %-17s  %s\n",
			r.ID, r.Kind, r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.PagesVisited, r.PagesFailed, stop, r.Start)
	}

	return w.output.Write([]byte(sb.String()))
}

// WritePages outputs the per-page records of a single run.
func (w *SimpleWriter) WritePages(run model.RunRecord, pages []model.PageRecord) (int, error) {
	var sb strings.Builder

	writeRule(&sb, "-")
	fmt.Fprintf(&sb, "RUN %s (%s from %s)\n", run.ID, run.Kind, run.Start)
	writeRule(&sb, "-")

	for _, p := range pages {
		fmt.Fprintf(&sb, "%-6s  L%d  %-40s  tokens=%d words=%d",
			p.Status, p.Level, p.Page, p.Tokens, p.DistinctWords)
		if p.Error != "" {
			fmt.Fprintf(&sb, "  error=%s", p.Error)
		}
		sb.WriteString("\n")
	}

	return w.output.Write([]byte(sb.String()))
}

func writeRule(sb *strings.Builder, ch string) {
	sb.WriteString(strings.Repeat(ch, ruleWidth))
	sb.WriteString("\n")
}
