package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/wikifreq/internal/extract"
	"github.com/nao1215/wikifreq/internal/freq"
	"github.com/nao1215/wikifreq/internal/model"
)

// defaultTableTop is the number of table words printed.
const defaultTableTop = 10

// NewTableCmd creates the table command.
func NewTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table <page>",
		Short: "Export a table of an article as CSV",
		Long: `Table fetches an article, writes its N-th table (counting from 1) to
<page>_<N>.csv and prints the most frequent words of the table cells.
The frequency store is not changed.

Examples:
  # First table of the article
  wikifreq table Golden_Walnut

  # Third table, CSV into ./tables
  wikifreq table -n 3 --dir tables Golden_Walnut`,
		Args: cobra.ExactArgs(1),
		RunE: runTableCmd,
	}

	cmd.Flags().IntP("number", "n", 1, "Table to export, counting from 1")
	cmd.Flags().String("dir", ".", "Directory the CSV file is written to")
	cmd.Flags().Int("top", defaultTableTop, "Number of table words printed")

	return cmd
}

// runTableCmd executes the table command.
func runTableCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	number, err := cmd.Flags().GetInt("number")
	if err != nil {
		return err
	}
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return err
	}
	top, err := cmd.Flags().GetInt("top")
	if err != nil {
		return err
	}

	page := model.NewPageID(args[0])
	if page.IsEmpty() {
		return fmt.Errorf("invalid page name: %q", args[0])
	}

	fetcher, err := a.fetcher()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	markup, err := fetcher.Fetch(ctx, page)
	if err != nil {
		return err
	}

	table, err := extract.NthTable(markup, number)
	if err != nil {
		return fmt.Errorf("%s: %w", page, err)
	}

	path := filepath.Join(dir, csvFileName(page, number))
	if err := writeCSV(path, table); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Table %d of %s written to %s (%d rows)\n", number, page, path, len(table))

	var tokens []string
	for _, cell := range table.Cells() {
		tokens = append(tokens, extract.TokenizeText(cell)...)
	}
	writeTopWords(a, freq.Summarize(tokens), top)
	return nil
}

// csvFileName returns "<Title_With_Underscores>_<n>.csv" with path
// separators replaced so the file stays inside the output directory.
func csvFileName(page model.PageID, n int) string {
	name := strings.NewReplacer("/", "_", `\`, "_").Replace(page.Path())
	return fmt.Sprintf("%s_%d.csv", name, n)
}

// writeCSV writes table to path. Rows may have different lengths.
func writeCSV(path string, table extract.Table) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // path is built from the command line
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(table); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}
	return f.Close()
}

// writeTopWords prints the n most frequent words of counts.
func writeTopWords(a *app, counts *freq.Table, n int) {
	counts.Sort()
	entries := counts.Top(n)
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "The table has no words.")
		return
	}
	fmt.Fprintf(a.out, "Top words (%d distinct, %d total):\n", counts.Len(), counts.Total())
	for i, e := range entries {
		fmt.Fprintf(a.out, "%3d. %-20s %d\n", i+1, e.Word, e.Count)
	}
}
