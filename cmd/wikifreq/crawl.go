package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/wikifreq/internal/config"
	"github.com/nao1215/wikifreq/internal/crawler"
	"github.com/nao1215/wikifreq/internal/database"
	"github.com/nao1215/wikifreq/internal/model"
	"github.com/nao1215/wikifreq/internal/report"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl <start-page>",
		Short: "Crawl the wiki breadth-first and count every article",
		Long: `Crawl starts at an article, counts its words, then follows the links of
its body text level by level. Every article is visited at most once and
the counts are merged into the frequency store after each page, so an
interrupted crawl keeps what it has counted.

Depth is the number of link hops: 0 counts only the start article,
1 adds the articles it links to, and so on.

Examples:
  # Crawl two hops from the start article (the default)
  wikifreq crawl Ginger_Island

  # Only the start article and its direct links, no pause between pages
  wikifreq crawl --depth 1 --wait 0s Ginger_Island

  # Stop after 50 articles
  wikifreq crawl --max-pages 50 Ginger_Island`,
		Args: cobra.ExactArgs(1),
		RunE: runCrawlCmd,
	}

	cmd.Flags().IntP("depth", "d", config.DefaultCrawlDepth,
		"Number of link hops followed from the start article")
	cmd.Flags().DurationP("wait", "w", config.DefaultCrawlDelay,
		"Pause after each fetched page")
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of articles to count (0 means no limit)")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	start := model.NewPageID(args[0])
	if start.IsEmpty() {
		return fmt.Errorf("invalid page name: %q", args[0])
	}

	fetcher, err := a.fetcher()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	run := a.beginHistory(ctx, database.KindCrawl, start)
	opts := []crawler.SpiderOption{
		crawler.WithMaxDepth(a.cfg.CrawlDepth),
		crawler.WithMaxPages(a.cfg.MaxPages),
		crawler.WithDelay(a.cfg.CrawlDelay),
		crawler.WithLogger(a.logger),
		crawler.WithTokenizer(a.tokenizer()),
		crawler.WithLinkExtractor(a.linkExtractor(fetcher)),
	}
	if rec := run.recorder(); rec != nil {
		opts = append(opts, crawler.WithRecorder(rec))
	}

	a.logger.Info("starting crawl",
		"start", start,
		"depth", a.cfg.CrawlDepth,
		"max_pages", a.cfg.MaxPages,
		"source", a.cfg.Source,
	)

	spider := crawler.NewSpider(fetcher, a.store(), opts...)
	result, crawlErr := spider.Crawl(ctx, start)
	if result == nil {
		run.finish(0, 0, crawler.StopCancelled.String())
		return crawlErr
	}
	run.finish(len(result.Visited), len(result.Failed), result.StopReason.String())

	writer := report.NewSimpleWriter(a.out, report.WithVerbose(a.cfg.Verbose))
	if _, err := writer.WriteCrawl(result); err != nil {
		return fmt.Errorf("failed to write crawl summary: %w", err)
	}

	if crawlErr != nil {
		return fmt.Errorf("crawl stopped: %w", crawlErr)
	}
	return nil
}
