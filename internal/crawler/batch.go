package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/wikifreq/internal/extract"
	"github.com/nao1215/wikifreq/internal/fetch"
	"github.com/nao1215/wikifreq/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages BatchCounter fetches at once.
const DefaultConcurrency = 4

// PageCount is the outcome of counting one page.
type PageCount struct {
	Page   model.PageID
	Tokens int
	Err    error
}

// BatchCounter counts the words of a fixed list of pages and merges them
// into a store. Fetches run concurrently; merges are serialized by the store.
type BatchCounter struct {
	processor
	concurrency int
}

// BatchOption configures a BatchCounter.
type BatchOption func(*BatchCounter)

// WithConcurrency sets the maximum number of concurrent fetches.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchCounter) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithBatchLogger sets the logger.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchCounter) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithBatchRecorder sets a Recorder that receives every page outcome.
func WithBatchRecorder(r Recorder) BatchOption {
	return func(b *BatchCounter) {
		b.recorder = r
	}
}

// WithBatchTokenizer replaces the default tokenizer.
func WithBatchTokenizer(t *extract.Tokenizer) BatchOption {
	return func(b *BatchCounter) {
		if t != nil {
			b.tokenizer = t
		}
	}
}

// NewBatchCounter creates a BatchCounter.
func NewBatchCounter(fetcher fetch.PageFetcher, store Aggregator, opts ...BatchOption) *BatchCounter {
	b := &BatchCounter{
		processor: processor{
			fetcher:   fetcher,
			store:     store,
			tokenizer: extract.NewTokenizer(),
			logger:    slog.Default(),
		},
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Count fetches every page and merges its counts. Each page is an
// independent operation: a failed page does not prevent the others from
// being counted. Results keep the order of pages; the returned error joins
// every per-page error.
func (b *BatchCounter) Count(ctx context.Context, pages []model.PageID) ([]PageCount, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}

	b.logger.Info("starting batch count", "pages", len(pages), "concurrency", b.concurrency)
	startTime := time.Now()

	results := make([]PageCount, len(pages))

	var g errgroup.Group
	g.SetLimit(b.concurrency)

	for i, id := range pages {
		results[i].Page = id
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}

			page, err := b.fetchPage(ctx, id, 0)
			if err != nil {
				results[i].Err = err
				return nil
			}

			out, err := b.aggregate(ctx, page, 0)
			if err != nil {
				results[i].Err = fmt.Errorf("failed to merge counts of %q: %w", id, err)
				return nil
			}
			results[i].Tokens = out.tokens
			return nil
		})
	}

	// Workers never return errors; failures live in results.
	_ = g.Wait() //nolint:errcheck

	errs := make([]error, 0)
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}

	b.logger.Info("batch count complete",
		"pages", len(pages),
		"failed", len(errs),
		"elapsed", time.Since(startTime),
	)
	return results, errors.Join(errs...)
}
