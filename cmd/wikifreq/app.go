package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/wikifreq/internal/config"
	"github.com/nao1215/wikifreq/internal/crawler"
	"github.com/nao1215/wikifreq/internal/database"
	"github.com/nao1215/wikifreq/internal/extract"
	"github.com/nao1215/wikifreq/internal/fetch"
	"github.com/nao1215/wikifreq/internal/freq"
	wflog "github.com/nao1215/wikifreq/internal/log"
	"github.com/nao1215/wikifreq/internal/model"
)

// app bundles what every subcommand needs once configuration is resolved.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
}

// newApp loads the configuration, applies the flags that were set on the
// command line and validates the result.
func newApp(cmd *cobra.Command) (*app, error) {
	configPath := ""
	if f := cmd.Flag("config"); f != nil {
		configPath = f.Value.String()
	}

	cfg, err := config.Load(config.LoadOptions{ConfigPath: configPath})
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	return &app{
		cfg:    cfg,
		logger: logger,
		out:    cmd.OutOrStdout(),
	}, nil
}

// newLogger builds the logger selected by --log-format.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	level := wflog.LevelFor(cfg.Verbose, cfg.Quiet)
	format := "text"
	if f := cmd.Flag("log-format"); f != nil {
		format = f.Value.String()
	}
	switch format {
	case "text":
		return wflog.NewLogger(cmd.ErrOrStderr(), level), nil
	case "json":
		return wflog.NewJSONLogger(cmd.ErrOrStderr(), level), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q: must be text or json", format)
	}
}

// applyFlags copies explicitly set flags into cfg. Flags left at their
// defaults do not override the file or environment.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	stringFlag(cmd, "store", &cfg.StorePath)
	stringFlag(cmd, "wiki-url", &cfg.WikiURL)
	stringFlag(cmd, "source", &cfg.Source)
	stringFlag(cmd, "local-dir", &cfg.LocalDir)
	stringFlag(cmd, "language", &cfg.Language)
	stringFlag(cmd, "mode", &cfg.Mode)
	stringFlag(cmd, "reference-dir", &cfg.ReferenceDir)
	stringFlag(cmd, "db-dir", &cfg.DBDir)

	for name, dst := range map[string]*int{
		"depth":       &cfg.CrawlDepth,
		"max-pages":   &cfg.MaxPages,
		"concurrency": &cfg.Concurrency,
		"count":       &cfg.Count,
	} {
		if err := intFlag(cmd, name, dst); err != nil {
			return err
		}
	}

	if err := durationFlag(cmd, "wait", &cfg.CrawlDelay); err != nil {
		return err
	}
	if err := durationFlag(cmd, "timeout", &cfg.Timeout); err != nil {
		return err
	}

	if err := boolFlag(cmd, "verbose", &cfg.Verbose); err != nil {
		return err
	}
	if err := boolFlag(cmd, "quiet", &cfg.Quiet); err != nil {
		return err
	}
	var noHistory bool
	if err := boolFlag(cmd, "no-history", &noHistory); err != nil {
		return err
	}
	if noHistory {
		cfg.SaveToDB = false
	}
	return nil
}

// changedFlag returns the flag if it exists on cmd or its parents and was
// set on the command line.
func changedFlag(cmd *cobra.Command, name string) (string, bool) {
	f := cmd.Flag(name)
	if f == nil || !f.Changed {
		return "", false
	}
	return f.Value.String(), true
}

func stringFlag(cmd *cobra.Command, name string, dst *string) {
	if v, ok := changedFlag(cmd, name); ok {
		*dst = v
	}
}

func intFlag(cmd *cobra.Command, name string, dst *int) error {
	v, ok := changedFlag(cmd, name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid --%s: %w", name, err)
	}
	*dst = n
	return nil
}

func durationFlag(cmd *cobra.Command, name string, dst *time.Duration) error {
	v, ok := changedFlag(cmd, name)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid --%s: %w", name, err)
	}
	*dst = d
	return nil
}

func boolFlag(cmd *cobra.Command, name string, dst *bool) error {
	v, ok := changedFlag(cmd, name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid --%s: %w", name, err)
	}
	*dst = b
	return nil
}

// fetcher builds the page source selected by the configuration.
func (a *app) fetcher() (fetch.PageFetcher, error) {
	if a.cfg.Source == config.SourceFile {
		return fetch.NewFileFetcher(a.cfg.LocalDir), nil
	}
	f, err := fetch.NewHTTPFetcher(a.cfg.WikiURL,
		fetch.WithHTTPArticlePath(a.cfg.ArticlePath),
		fetch.WithUserAgent(a.cfg.UserAgent),
		fetch.WithTimeout(a.cfg.Timeout),
		fetch.WithMaxBodySize(a.cfg.MaxBodySize),
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// store opens the frequency store.
func (a *app) store() *freq.Store {
	return freq.NewStore(a.cfg.StorePath)
}

func (a *app) tokenizer() *extract.Tokenizer {
	return extract.NewTokenizer(extract.WithTokenizerSelector(a.cfg.ContentSelector))
}

// linkExtractor follows links on the host pages are fetched from, or on
// the configured wiki host for saved pages.
func (a *app) linkExtractor(fetcher fetch.PageFetcher) *extract.LinkExtractor {
	opts := []extract.LinkOption{
		extract.WithArticlePath(a.cfg.ArticlePath),
		extract.WithLinkSelector(a.cfg.ContentSelector),
	}
	if hf, ok := fetcher.(*fetch.HTTPFetcher); ok {
		opts = append(opts, extract.WithHost(hf.Host()))
	} else if u, err := url.Parse(a.cfg.WikiURL); err == nil {
		opts = append(opts, extract.WithHost(u.Hostname()))
	}
	if a.cfg.BlockedNamespaces != nil {
		opts = append(opts, extract.WithBlockedNamespaces(a.cfg.BlockedNamespaces))
	}
	return extract.NewLinkExtractor(opts...)
}

// runLog is an open crawl history run. Without a database it records nothing.
type runLog struct {
	db     *database.CrawlDB
	rec    *database.RunRecorder
	logger *slog.Logger
}

// beginHistory opens the history database and starts a run. Failures are
// logged and yield a history that records nothing.
func (a *app) beginHistory(ctx context.Context, kind string, start model.PageID) *runLog {
	h := &runLog{logger: a.logger}
	if !a.cfg.SaveToDB {
		return h
	}

	db, err := database.Open(a.cfg.DBDir, database.DefaultOptions())
	if err != nil {
		a.logger.Warn("crawl history disabled", "error", err)
		return h
	}
	runID, err := db.BeginRun(ctx, kind, start)
	if err != nil {
		a.logger.Warn("crawl history disabled", "error", err)
		_ = db.Close()
		return h
	}

	h.db = db
	h.rec = db.Recorder(runID)
	a.logger.Debug("recording run", "run", h.rec.RunID(), "db", db.Path())
	return h
}

// recorder returns the run's page recorder, or nil when not recording.
func (h *runLog) recorder() crawler.Recorder {
	if h.rec == nil {
		return nil
	}
	return h.rec
}

// finish stores the run totals and closes the database.
func (h *runLog) finish(visited, failed int, stopReason string) {
	if h.rec == nil {
		return
	}
	runID := h.rec.RunID()
	// The command context may already be cancelled; the totals still matter.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.db.FinishRun(ctx, runID, visited, failed, stopReason); err != nil {
		h.logger.Warn("failed to finish run", "run", runID, "error", err)
	}
	if err := h.db.Close(); err != nil {
		h.logger.Warn("failed to close history database", "error", err)
	}
}

// createOutput opens path for writing, creating parent directories. Reports
// are readable by the owner only. An empty path writes to fallback.
func createOutput(path string, fallback io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return fallback, func() error { return nil }, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
