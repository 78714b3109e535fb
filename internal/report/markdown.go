package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/wikifreq/internal/analysis"
)

// pieSlices caps the number of words drawn in the mermaid chart.
const pieSlices = 10

// MarkdownWriter outputs analysis results in Markdown format.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the result in Markdown format.
func (w *MarkdownWriter) Write(result *analysis.Result) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeRows(md, result)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the analysis parameters.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *analysis.Result) {
	md.H1(modeTitle(result))
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Mode", result.Mode.String()},
			{"Language", languageName(result.Language)},
			{"Words", strconv.Itoa(len(result.Rows))},
		},
	})
	md.PlainText("")
}

// writeRows writes the comparison table and a chart of local frequencies.
func (w *MarkdownWriter) writeRows(md *markdown.Markdown, result *analysis.Result) {
	md.H2("Relative Frequencies")
	md.PlainText("")

	if len(result.Rows) == 0 {
		md.Note("The frequency store has no words to compare.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(result.Rows))
	for i, row := range result.Rows {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			"`" + row.Word + "`",
			formatFrequency(row.Local),
			formatFrequency(row.Reference),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Word", "Article", "Language"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writePieChart(md, result)
}

// writePieChart writes a mermaid pie chart of the article frequencies.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, result *analysis.Result) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Article frequency share"),
		piechart.WithShowData(true),
	)

	slices := 0
	for _, row := range result.Rows {
		if slices == pieSlices {
			break
		}
		if row.Local <= 0 {
			continue
		}
		chart.LabelAndFloatValue(row.Word, row.Local)
		slices++
	}
	if slices == 0 {
		return
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by [wikifreq](https://github.com/nao1215/wikifreq)*")
}
