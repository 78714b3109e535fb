package extract

import (
	"fmt"
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

// footnoteMarker matches inline citation markers such as "[12]".
var footnoteMarker = regexp.MustCompile(`\[\d+\]`)

// Summary returns the first non-empty paragraph of the page's content
// region with footnote markers removed.
func Summary(markup string) (string, error) {
	region := contentRegion(markup, DefaultContentSelector)
	if region.Length() == 0 {
		return "", ErrNoContent
	}
	stripChrome(region)

	var summary string
	region.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := collapseSpace(footnoteMarker.ReplaceAllString(nodeText(p.Nodes), ""))
		if text == "" {
			return true
		}
		summary = text
		return false
	})
	return summary, nil
}

// Table is one HTML table as rows of cell text.
// The first row is the header row when the table has one.
type Table [][]string

// Cells returns every non-empty cell of the table in row order.
func (t Table) Cells() []string {
	cells := make([]string, 0)
	for _, row := range t {
		for _, cell := range row {
			if cell != "" {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}

// Tables returns every table of the content region in document order.
// Navigation boxes and other chrome are excluded.
func Tables(markup string) []Table {
	region := contentRegion(markup, DefaultContentSelector)
	tables := make([]Table, 0)
	if region.Length() == 0 {
		return tables
	}
	stripChrome(region)

	region.Find("table").Each(func(_ int, tbl *goquery.Selection) {
		var table Table
		tbl.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			// Rows of nested tables belong to the nested table.
			if tr.Closest("table").Get(0) != tbl.Get(0) {
				return
			}
			var row []string
			tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
				row = append(row, collapseSpace(footnoteMarker.ReplaceAllString(nodeText(cell.Nodes), "")))
			})
			if len(row) > 0 {
				table = append(table, row)
			}
		})
		if len(table) > 0 {
			tables = append(tables, table)
		}
	})
	return tables
}

// NthTable returns the n-th table of the page, counting from 1.
func NthTable(markup string, n int) (Table, error) {
	tables := Tables(markup)
	if n < 1 || n > len(tables) {
		return nil, fmt.Errorf("%w: table %d of %d", ErrTableNotFound, n, len(tables))
	}
	return tables[n-1], nil
}
