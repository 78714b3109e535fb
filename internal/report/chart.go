package report

import (
	"bytes"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/nao1215/wikifreq/internal/analysis"
)

// chartAxisMax leaves headroom above the normalized maximum of 1.
const chartAxisMax = 1.2

// ChartWriter renders an analysis result as a standalone HTML page with a
// grouped bar chart: one bar per source for every word.
type ChartWriter struct {
	baseWriter
}

// NewChartWriter creates a ChartWriter that outputs to the given writer.
func NewChartWriter(output io.Writer) *ChartWriter {
	return &ChartWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write renders the HTML chart.
func (w *ChartWriter) Write(result *analysis.Result) (int, error) {
	words := make([]string, 0, len(result.Rows))
	local := make([]opts.BarData, 0, len(result.Rows))
	reference := make([]opts.BarData, 0, len(result.Rows))
	for _, row := range result.Rows {
		words = append(words, row.Word)
		local = append(local, opts.BarData{Name: row.Word, Value: row.Local})
		reference = append(reference, opts.BarData{Name: row.Word, Value: row.Reference})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "wikifreq",
			Width:     "1200px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    modeTitle(result),
			Subtitle: "frequencies normalized to the most frequent word",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			AxisLabel: &opts.AxisLabel{Interval: "0", Rotate: 45},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Max:  chartAxisMax,
		}),
	)
	bar.SetXAxis(words).
		AddSeries("Article", local).
		AddSeries("Language", reference)

	// Render into a buffer so a partial page never reaches the output.
	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}
