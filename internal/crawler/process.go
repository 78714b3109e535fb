package crawler

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/wikifreq/internal/extract"
	"github.com/nao1215/wikifreq/internal/fetch"
	"github.com/nao1215/wikifreq/internal/freq"
	"github.com/nao1215/wikifreq/internal/model"
)

// Aggregator merges word counts into persistent storage.
// *freq.Store implements it.
type Aggregator interface {
	MergeAndPersist(counts *freq.Table) (*freq.Table, error)
}

// Recorder receives the outcome of every processed page.
// The database package provides a Recorder bound to a crawl run.
type Recorder interface {
	RecordPage(ctx context.Context, rec model.PageRecord) error
}

// processor holds what Spider and BatchCounter share: fetching one page,
// tokenizing it and merging its counts.
type processor struct {
	fetcher   fetch.PageFetcher
	store     Aggregator
	tokenizer *extract.Tokenizer
	logger    *slog.Logger
	recorder  Recorder
}

// pageOutcome is the result of processing one page.
type pageOutcome struct {
	page   *model.Page
	tokens int
}

// fetchPage fetches id and records a failure. The returned error is the
// fetch error, which callers treat as non-fatal.
func (p *processor) fetchPage(ctx context.Context, id model.PageID, level int) (*model.Page, error) {
	p.logger.Info("fetching page", "page", id, "level", level)

	markup, err := p.fetcher.Fetch(ctx, id)
	if err != nil {
		p.logger.Warn("failed to fetch page", "page", id, "level", level, "error", err)
		p.record(ctx, model.PageRecord{
			Page:   id,
			Level:  level,
			Status: model.PageStatusFailed,
			Error:  err.Error(),
		})
		return nil, err
	}
	return model.NewPage(id, markup), nil
}

// aggregate tokenizes the page and merges its counts into the store.
// A store error is returned unchanged.
func (p *processor) aggregate(ctx context.Context, page *model.Page, level int) (*pageOutcome, error) {
	tokens := p.tokenizer.Tokenize(page.Markup)
	counts := freq.Summarize(tokens)

	if _, err := p.store.MergeAndPersist(counts); err != nil {
		return nil, err
	}

	p.logger.Debug("merged page counts",
		"page", page.ID,
		"bytes", page.Size(),
		"tokens", len(tokens),
		"distinct_words", counts.Len(),
	)
	p.record(ctx, model.PageRecord{
		Page:          page.ID,
		Level:         level,
		Status:        model.PageStatusOK,
		Tokens:        len(tokens),
		DistinctWords: counts.Len(),
		ContentHash:   page.Hash,
	})
	return &pageOutcome{page: page, tokens: len(tokens)}, nil
}

// record forwards rec to the recorder. Recording failures only log.
func (p *processor) record(ctx context.Context, rec model.PageRecord) {
	if p.recorder == nil {
		return
	}
	rec.FetchedAt = time.Now().UTC()
	if err := p.recorder.RecordPage(ctx, rec); err != nil {
		p.logger.Warn("failed to record page", "page", rec.Page, "error", err)
	}
}
