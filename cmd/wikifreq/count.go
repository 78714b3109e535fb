package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/wikifreq/internal/config"
	"github.com/nao1215/wikifreq/internal/crawler"
	"github.com/nao1215/wikifreq/internal/database"
	"github.com/nao1215/wikifreq/internal/model"
)

// NewCountCmd creates the count command.
func NewCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count <page>...",
		Short: "Count the words of articles and merge them into the store",
		Long: `Count fetches each article, counts the words of its body text and adds
the counts to the frequency store. Page names may use spaces or underscores.

Pages are fetched concurrently; a page that cannot be fetched is reported
and does not prevent the others from being counted.

Examples:
  # Count one article
  wikifreq count Golden_Walnut

  # Count several articles, two at a time
  wikifreq count --concurrency 2 Ginger_Island "Island Trader" Walnut_Room

  # Count saved pages from ./local_page
  wikifreq count --source file Golden_Walnut`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCountCmd,
	}

	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Number of pages fetched at once")

	return cmd
}

// runCountCmd executes the count command.
func runCountCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	pages := make([]model.PageID, 0, len(args))
	for _, arg := range args {
		id := model.NewPageID(arg)
		if id.IsEmpty() {
			return fmt.Errorf("invalid page name: %q", arg)
		}
		pages = append(pages, id)
	}

	fetcher, err := a.fetcher()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	run := a.beginHistory(ctx, database.KindCount, pages[0])
	opts := []crawler.BatchOption{
		crawler.WithConcurrency(a.cfg.Concurrency),
		crawler.WithBatchLogger(a.logger),
		crawler.WithBatchTokenizer(a.tokenizer()),
	}
	if rec := run.recorder(); rec != nil {
		opts = append(opts, crawler.WithBatchRecorder(rec))
	}

	counter := crawler.NewBatchCounter(fetcher, a.store(), opts...)
	results, countErr := counter.Count(ctx, pages)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			if crawler.IsFetchError(r.Err) || ctx.Err() != nil {
				fmt.Fprintf(a.out, "%s: failed: %v\n", r.Page, r.Err)
			} else {
				fmt.Fprintf(a.out, "%s: failed to merge: %v\n", r.Page, r.Err)
			}
			continue
		}
		fmt.Fprintf(a.out, "%s: %d words\n", r.Page, r.Tokens)
	}

	stop := "done"
	if ctx.Err() != nil {
		stop = crawler.StopCancelled.String()
	}
	run.finish(len(results)-failed, failed, stop)

	if countErr != nil {
		return fmt.Errorf("%d of %d pages failed: %w", failed, len(pages), countErr)
	}
	fmt.Fprintf(a.out, "Merged into %s\n", a.cfg.StorePath)
	return nil
}
