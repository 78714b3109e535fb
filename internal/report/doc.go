// Package report renders analysis results and crawl history.
//
// Writers for analysis results:
//   - SimpleWriter: aligned text for terminal display
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: a Markdown document with a table and a mermaid chart
//   - ChartWriter: a standalone HTML bar chart rendered by go-echarts
//
// Writers implement the Writer interface, so they can be combined with
// MultiWriter when the same result goes to several destinations.
package report
