package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/wikifreq/internal/extract"
	"github.com/nao1215/wikifreq/internal/model"
)

// NewSummaryCmd creates the summary command.
func NewSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <page>",
		Short: "Print the first paragraph of an article",
		Long: `Summary fetches an article and prints the first paragraph of its body
text with footnote markers removed. The frequency store is not changed.

Examples:
  wikifreq summary Golden_Walnut
  wikifreq summary --source file "Ginger Island"`,
		Args: cobra.ExactArgs(1),
		RunE: runSummaryCmd,
	}
}

// runSummaryCmd executes the summary command.
func runSummaryCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
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

	summary, err := extract.Summary(markup)
	if err != nil {
		return fmt.Errorf("failed to summarize %s: %w", page, err)
	}
	if summary == "" {
		fmt.Fprintf(a.out, "%s has no summary paragraph.\n", page)
		return nil
	}
	fmt.Fprintln(a.out, summary)
	return nil
}
