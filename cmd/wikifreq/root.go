package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/wikifreq/internal/config"
)

// NewRootCmd creates the root command for wikifreq.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wikifreq",
		Short: "Word frequency statistics for wiki articles",
		Long: `wikifreq reads articles from a MediaWiki site, counts the words of their
body text and merges the counts into a persistent frequency store.

It can crawl the wiki breadth-first from a start article, and compare the
accumulated counts with the typical word frequencies of a language to show
which words are characteristic of the wiki.

Settings come from defaults, a .wikifreq YAML file, a .env file, WIKIFREQ_*
environment variables and flags, each overriding the previous one.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	flags := cmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Enable debug logging")
	flags.BoolP("quiet", "q", false, "Only log warnings and errors")
	flags.StringP("config", "c", "",
		"Configuration file path (default: .wikifreq in current, XDG config or home directory)")
	flags.StringP("store", "s", "", "Word frequency store (default: word-counts.json)")
	flags.String("wiki-url", "", "Wiki base URL (default: https://stardewvalleywiki.com)")
	flags.String("source", "", "Page source: remote or file (default: remote)")
	flags.String("local-dir", "", "Directory of saved pages for --source file (default: local_page)")
	flags.Duration("timeout", config.DefaultTimeout, "Timeout for each page request")
	flags.Bool("no-history", false, "Do not record runs in the crawl history database")
	flags.String("log-format", "text", "Log format on stderr: text or json")

	// Add subcommands
	cmd.AddCommand(NewCountCmd())
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewSummaryCmd())
	cmd.AddCommand(NewTableCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
