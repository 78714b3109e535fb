package analysis

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/nao1215/wikifreq/internal/freq"
	"github.com/nao1215/wikifreq/internal/model"
)

// DefaultTopK is the number of reference words compared in language mode.
const DefaultTopK = 1000

// DefaultCount is the number of rows returned when none is requested.
const DefaultCount = 10

// TableLoader loads the persisted frequency table.
// *freq.Store implements it.
type TableLoader interface {
	Load() (*freq.Table, error)
}

// Options selects what an analysis computes.
type Options struct {
	Mode  Mode
	Count int
}

// Result is the outcome of an analysis.
type Result struct {
	Mode     Mode
	Language string
	Rows     []model.ComparisonRow
}

// Analyzer compares a frequency table with a reference corpus.
type Analyzer struct {
	corpus   ReferenceCorpus
	language string
	topK     int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithTopK sets the number of reference words used in language mode.
func WithTopK(k int) Option {
	return func(a *Analyzer) {
		if k > 0 {
			a.topK = k
		}
	}
}

// WithLanguage records the reference language code in results.
func WithLanguage(lang string) Option {
	return func(a *Analyzer) {
		a.language = lang
	}
}

// NewAnalyzer creates an Analyzer backed by corpus.
func NewAnalyzer(corpus ReferenceCorpus, opts ...Option) *Analyzer {
	a := &Analyzer{corpus: corpus, topK: DefaultTopK}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze loads the table from store and returns the first opts.Count
// comparison rows. Errors from the store, including freq.ErrStoreNotFound,
// are returned wrapped.
func (a *Analyzer) Analyze(store TableLoader, opts Options) (*Result, error) {
	mode, err := ParseMode(string(opts.Mode))
	if err != nil {
		return nil, err
	}
	if opts.Count <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, opts.Count)
	}

	table, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load frequency table: %w", err)
	}

	rows := a.candidates(table, mode)
	normalize(rows)

	if mode == ModeArticle {
		slices.SortStableFunc(rows, func(x, y model.ComparisonRow) int {
			return cmp.Compare(y.Local, x.Local)
		})
	} else {
		slices.SortStableFunc(rows, func(x, y model.ComparisonRow) int {
			return cmp.Compare(y.Reference, x.Reference)
		})
	}

	if len(rows) > opts.Count {
		rows = rows[:opts.Count]
	}
	return &Result{Mode: mode, Language: a.language, Rows: rows}, nil
}

// candidates builds rows with raw column values.
func (a *Analyzer) candidates(table *freq.Table, mode Mode) []model.ComparisonRow {
	if mode == ModeArticle {
		entries := table.Entries()
		rows := make([]model.ComparisonRow, len(entries))
		for i, e := range entries {
			rows[i] = model.ComparisonRow{
				Word:      e.Word,
				Local:     float64(e.Count),
				Reference: a.corpus.Frequency(e.Word),
			}
		}
		return rows
	}

	words := a.corpus.TopN(a.topK)
	rows := make([]model.ComparisonRow, len(words))
	for i, w := range words {
		rows[i] = model.ComparisonRow{
			Word:      w,
			Local:     float64(table.Count(w)),
			Reference: a.corpus.Frequency(w),
		}
	}
	return rows
}

// normalize divides each column by its maximum. A column whose maximum is
// zero is left as is.
func normalize(rows []model.ComparisonRow) {
	var maxLocal, maxRef float64
	for _, r := range rows {
		maxLocal = max(maxLocal, r.Local)
		maxRef = max(maxRef, r.Reference)
	}
	for i := range rows {
		if maxLocal > 0 {
			rows[i].Local /= maxLocal
		}
		if maxRef > 0 {
			rows[i].Reference /= maxRef
		}
	}
}
