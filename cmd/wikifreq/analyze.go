package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/wikifreq/internal/analysis"
	"github.com/nao1215/wikifreq/internal/config"
	"github.com/nao1215/wikifreq/internal/freq"
	"github.com/nao1215/wikifreq/internal/report"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compare the stored word counts with a language",
		Long: `Analyze compares the accumulated word counts with the typical word
frequencies of a language and prints one row per word with its relative
frequency in the articles and in the language. Both columns are scaled so
that their largest value is 1.

Modes:
  language  the most common words of the language (default)
  article   the most common words of the crawled articles

The reference corpus is read from <reference-dir>/<language>.txt, a list
of "word count" lines.

Examples:
  # Top 10 words of the language
  wikifreq analyze

  # Top 25 words of the articles as Markdown
  wikifreq analyze --mode article -n 25 --markdown -o report.md

  # JSON on stdout plus an HTML bar chart
  wikifreq analyze --json --chart chart.html`,
		Args: cobra.NoArgs,
		RunE: runAnalyzeCmd,
	}

	cmd.Flags().StringP("mode", "m", config.DefaultMode,
		"Analysis mode: article or language")
	cmd.Flags().IntP("count", "n", config.DefaultCount,
		"Number of words to show")
	cmd.Flags().StringP("language", "l", config.DefaultLanguage,
		"Reference language (BCP 47 code)")
	cmd.Flags().String("reference-dir", "",
		"Directory of reference corpora (default: XDG data dir/reference)")
	cmd.Flags().Int("top-k", analysis.DefaultTopK,
		"Number of reference words considered in language mode")
	cmd.Flags().String("chart", "",
		"Also write an HTML bar chart to this file")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().Bool("markdown", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.MarkFlagsMutuallyExclusive("json", "markdown")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	topK, err := cmd.Flags().GetInt("top-k")
	if err != nil {
		return err
	}
	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOut, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	chartPath, err := cmd.Flags().GetString("chart")
	if err != nil {
		return err
	}

	corpusPath := a.cfg.CorpusPath()
	corpus, err := analysis.LoadFileCorpus(corpusPath)
	if err != nil {
		return err
	}
	a.logger.Debug("loaded reference corpus", "path", corpusPath, "words", corpus.Len())

	mode, err := analysis.ParseMode(a.cfg.Mode)
	if err != nil {
		return err
	}

	analyzer := analysis.NewAnalyzer(corpus,
		analysis.WithTopK(topK),
		analysis.WithLanguage(a.cfg.Language),
	)
	result, err := analyzer.Analyze(a.store(), analysis.Options{Mode: mode, Count: a.cfg.Count})
	if err != nil {
		if errors.Is(err, freq.ErrStoreNotFound) {
			return fmt.Errorf("%w (run count or crawl first)", err)
		}
		return err
	}

	output, closeOutput, err := createOutput(outputPath, a.out)
	if err != nil {
		return err
	}
	defer closeOutput() //nolint:errcheck // closed explicitly below on success

	var writers []report.Writer
	switch {
	case jsonOut:
		writers = append(writers, report.NewJSONWriter(output,
			report.WithPrettyPrint(), report.WithVersion(getVersion())))
	case markdownOut:
		writers = append(writers, report.NewMarkdownWriter(output))
	default:
		writers = append(writers, report.NewSimpleWriter(output, report.WithVerbose(a.cfg.Verbose)))
	}

	if chartPath != "" {
		chartOutput, closeChart, err := createOutput(chartPath, nil)
		if err != nil {
			return err
		}
		defer closeChart() //nolint:errcheck // write errors are reported by the writer
		writers = append(writers, report.NewChartWriter(chartOutput))
	}

	if _, err := report.NewMultiWriter(writers...).Write(result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if outputPath != "" {
		if err := closeOutput(); err != nil {
			return fmt.Errorf("failed to close report file: %w", err)
		}
		fmt.Fprintf(a.out, "Report written to %s\n", outputPath)
	}
	if chartPath != "" {
		fmt.Fprintf(a.out, "Chart written to %s\n", chartPath)
	}
	return nil
}
