package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/wikifreq/internal/analysis"
	"github.com/nao1215/wikifreq/internal/model"
)

// JSONWriter outputs analysis results in JSON format.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// version is embedded in the output when non-empty.
	version string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// WithVersion records the generating wikifreq version in the output.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// JSONReport is the document written by JSONWriter.
type JSONReport struct {
	Version  string                `json:"version,omitempty"`
	Mode     string                `json:"mode"`
	Language string                `json:"language,omitempty"`
	Rows     []model.ComparisonRow `json:"rows"`
}

// NewJSONReport wraps an analysis result with metadata.
func NewJSONReport(result *analysis.Result, version string) *JSONReport {
	rows := result.Rows
	if rows == nil {
		rows = []model.ComparisonRow{}
	}
	return &JSONReport{
		Version:  version,
		Mode:     result.Mode.String(),
		Language: result.Language,
		Rows:     rows,
	}
}

// Write outputs the result in JSON format.
func (w *JSONWriter) Write(result *analysis.Result) (int, error) {
	return w.writeJSON(NewJSONReport(result, w.version))
}

// WriteRuns outputs recorded crawl runs in JSON format.
func (w *JSONWriter) WriteRuns(runs []model.RunRecord) (int, error) {
	if runs == nil {
		runs = []model.RunRecord{}
	}
	return w.writeJSON(runs)
}

// RunDetail is a recorded run together with its pages.
type RunDetail struct {
	model.RunRecord
	Pages []model.PageRecord `json:"pages"`
}

// WriteRun outputs one run and its page records in JSON format.
func (w *JSONWriter) WriteRun(run model.RunRecord, pages []model.PageRecord) (int, error) {
	if pages == nil {
		pages = []model.PageRecord{}
	}
	return w.writeJSON(RunDetail{RunRecord: run, Pages: pages})
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	data = append(data, '\n')

	return w.output.Write(data)
}
