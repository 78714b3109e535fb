package crawler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nao1215/wikifreq/internal/fetch"
	"github.com/nao1215/wikifreq/internal/freq"
	"github.com/nao1215/wikifreq/internal/model"
)

// fakeWiki is an in-memory PageFetcher that remembers every fetch.
type fakeWiki struct {
	mu      sync.Mutex
	pages   map[model.PageID]string
	fetched []model.PageID
}

func (w *fakeWiki) Fetch(_ context.Context, id model.PageID) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.fetched = append(w.fetched, id)
	markup, ok := w.pages[id]
	if !ok {
		return "", &fetch.Error{Page: id, Source: "fake", Err: fetch.ErrNotFound}
	}
	return markup, nil
}

func (w *fakeWiki) fetchCount() map[model.PageID]int {
	w.mu.Lock()
	defer w.mu.Unlock()

	counts := make(map[model.PageID]int)
	for _, id := range w.fetched {
		counts[id]++
	}
	return counts
}

// wikiPage renders a minimal MediaWiki page with prose and article links.
func wikiPage(text string, links ...string) string {
	var sb strings.Builder
	sb.WriteString(`<html><body><div id="mw-content-text"><p>`)
	sb.WriteString(text)
	sb.WriteString(`</p>`)
	for _, l := range links {
		sb.WriteString(`<a href="/` + strings.ReplaceAll(l, " ", "_") + `"></a>`)
	}
	sb.WriteString(`<a href="/File:Image.png"></a><a href="#top"></a></div></body></html>`)
	return sb.String()
}

// newFakeWiki builds the link graph
//
//	Golden Walnut -> Ginger Island, Parrot, Missing Page
//	Ginger Island -> Golden Walnut, Volcano
//	Parrot        -> Ginger Island
//	Volcano       -> Dwarf, Missing Page
//	Dwarf         -> (none)
func newFakeWiki() *fakeWiki {
	return &fakeWiki{pages: map[model.PageID]string{
		"Golden Walnut": wikiPage("golden walnut", "Ginger Island", "Parrot", "Missing Page"),
		"Ginger Island": wikiPage("ginger island walnut", "Golden Walnut", "Volcano"),
		"Parrot":        wikiPage("parrot walnut", "Ginger_Island"),
		"Volcano":       wikiPage("volcano dungeon", "Dwarf", "Missing Page"),
		"Dwarf":         wikiPage("dwarf"),
	}}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSpider(t *testing.T, wiki fetch.PageFetcher, opts ...SpiderOption) (*Spider, *freq.Store, *int) {
	t.Helper()

	store := freq.NewStore(filepath.Join(t.TempDir(), "counts.json"))
	opts = append([]SpiderOption{WithLogger(discardLogger())}, opts...)
	spider := NewSpider(wiki, store, opts...)

	sleeps := new(int)
	spider.sleep = func(_ context.Context, _ time.Duration) error {
		*sleeps++
		return nil
	}
	return spider, store, sleeps
}

func TestSpiderCrawlDepth(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		depth    int
		expected []model.PageID
		reason   StopReason
	}{
		{
			name:     "depth 0 visits only the start page",
			depth:    0,
			expected: []model.PageID{"Golden Walnut"},
			reason:   StopMaxDepth,
		},
		{
			name:     "depth 1 adds the linked pages",
			depth:    1,
			expected: []model.PageID{"Golden Walnut", "Ginger Island", "Parrot"},
			reason:   StopMaxDepth,
		},
		{
			name:     "depth 2 adds pages two hops away",
			depth:    2,
			expected: []model.PageID{"Golden Walnut", "Ginger Island", "Parrot", "Volcano"},
			reason:   StopMaxDepth,
		},
		{
			name:     "large depth ends when the graph is exhausted",
			depth:    10,
			expected: []model.PageID{"Golden Walnut", "Ginger Island", "Parrot", "Volcano", "Dwarf"},
			reason:   StopExhausted,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			wiki := newFakeWiki()
			spider, _, _ := newTestSpider(t, wiki, WithMaxDepth(tc.depth))

			res, err := spider.Crawl(context.Background(), "Golden Walnut")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(res.Visited, tc.expected) {
				t.Errorf("visited %v, expected %v", res.Visited, tc.expected)
			}
			if res.StopReason != tc.reason {
				t.Errorf("stop reason %v, expected %v", res.StopReason, tc.reason)
			}
			for id, n := range wiki.fetchCount() {
				if n != 1 {
					t.Errorf("page %q fetched %d times", id, n)
				}
			}
		})
	}
}

func TestSpiderCrawlFailureIsolation(t *testing.T) {
	t.Parallel()

	wiki := newFakeWiki()
	spider, _, _ := newTestSpider(t, wiki, WithMaxDepth(3))

	res, err := spider.Crawl(context.Background(), "Golden Walnut")
	if err != nil {
		t.Fatalf("a failed page must not abort the crawl: %v", err)
	}

	if len(res.Failed) != 1 {
		t.Fatalf("expected one failure, got %v", res.Failed)
	}
	failure := res.Failed[0]
	if failure.Page != "Missing Page" || failure.Level != 1 {
		t.Errorf("unexpected failure %+v", failure)
	}
	if !errors.Is(failure.Err, fetch.ErrNotFound) || !IsFetchError(failure.Err) {
		t.Errorf("unexpected failure error %v", failure.Err)
	}

	// Volcano links to Missing Page again at level 3; it must not be retried.
	if n := wiki.fetchCount()["Missing Page"]; n != 1 {
		t.Errorf("failed page fetched %d times", n)
	}
}

func TestSpiderCrawlBatches(t *testing.T) {
	t.Parallel()

	wiki := newFakeWiki()
	spider, _, _ := newTestSpider(t, wiki, WithMaxDepth(2))

	res, err := spider.Crawl(context.Background(), "Golden Walnut")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Levels() != 3 {
		t.Fatalf("expected 3 levels, got %d", res.Levels())
	}
	seen := NewPageSet()
	for level, batch := range res.Batches {
		for _, id := range batch {
			if seen.Has(id) {
				t.Errorf("page %q appears in more than one batch (level %d)", id, level)
			}
			seen.Add(id)
		}
	}
	if !reflect.DeepEqual(res.Batches[1], []model.PageID{"Ginger Island", "Missing Page", "Parrot"}) {
		t.Errorf("unexpected level 1 batch %v", res.Batches[1])
	}
}

func TestSpiderCrawlMergesCounts(t *testing.T) {
	t.Parallel()

	wiki := newFakeWiki()
	spider, store, _ := newTestSpider(t, wiki, WithMaxDepth(1))

	res, err := spider.Crawl(context.Background(), "Golden Walnut")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	table, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := map[string]int{"walnut": 3, "golden": 1, "ginger": 1, "island": 1, "parrot": 1}
	if !reflect.DeepEqual(table.Map(), expected) {
		t.Errorf("got %v, expected %v", table.Map(), expected)
	}
	if res.Tokens != table.Total() {
		t.Errorf("result tokens %d, store total %d", res.Tokens, table.Total())
	}
	if table.Entries()[0].Word != "walnut" {
		t.Errorf("store not sorted: %v", table.Entries())
	}

	// A second crawl of the same pages doubles every count.
	if _, err := spider.Crawl(context.Background(), "Golden Walnut"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	table, err = store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Count("walnut") != 6 {
		t.Errorf("expected walnut to be 6 after two crawls, got %d", table.Count("walnut"))
	}
}

func TestSpiderCrawlMaxPages(t *testing.T) {
	t.Parallel()

	wiki := newFakeWiki()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	spider, _, sleeps := newTestSpider(t, wiki, WithMaxDepth(5), WithMaxPages(2), WithLogger(logger))

	res, err := spider.Crawl(context.Background(), "Golden Walnut")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(res.Visited, []model.PageID{"Golden Walnut", "Ginger Island"}) {
		t.Errorf("unexpected visited pages %v", res.Visited)
	}
	if res.StopReason != StopMaxPages {
		t.Errorf("unexpected stop reason %v", res.StopReason)
	}
	if len(wiki.fetchCount()) != 2 {
		t.Errorf("expected no fetch after the ceiling, fetched %v", wiki.fetchCount())
	}
	if *sleeps != 1 {
		t.Errorf("expected 1 delay, got %d", *sleeps)
	}
	if !strings.Contains(logs.String(), "crawl finished") || !strings.Contains(logs.String(), `reason="max pages reached"`) {
		t.Errorf("expected the crawl finished log line, got %q", logs.String())
	}
}

func TestSpiderCrawlDelay(t *testing.T) {
	t.Parallel()

	t.Run("delay follows every successful page except the last fetch", func(t *testing.T) {
		t.Parallel()

		wiki := newFakeWiki()
		spider, _, sleeps := newTestSpider(t, wiki, WithMaxDepth(1))

		if _, err := spider.Crawl(context.Background(), "Golden Walnut"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Golden Walnut, then Ginger Island. Missing Page failed and Parrot is last.
		if *sleeps != 2 {
			t.Errorf("expected 2 delays, got %d", *sleeps)
		}
	})

	t.Run("delay applies after the final page of a level when more levels remain", func(t *testing.T) {
		t.Parallel()

		wiki := &fakeWiki{pages: map[model.PageID]string{"Lonely": wikiPage("lonely page")}}
		spider, _, sleeps := newTestSpider(t, wiki, WithMaxDepth(3))

		res, err := spider.Crawl(context.Background(), "Lonely")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.StopReason != StopExhausted {
			t.Errorf("unexpected stop reason %v", res.StopReason)
		}
		if *sleeps != 1 {
			t.Errorf("expected 1 delay, got %d", *sleeps)
		}
	})

	t.Run("real delay waits between fetches", func(t *testing.T) {
		t.Parallel()

		wiki := newFakeWiki()
		store := freq.NewStore(filepath.Join(t.TempDir(), "counts.json"))
		spider := NewSpider(wiki, store,
			WithLogger(discardLogger()),
			WithMaxDepth(1),
			WithDelay(20*time.Millisecond),
		)

		start := time.Now()
		if _, err := spider.Crawl(context.Background(), "Golden Walnut"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
			t.Errorf("expected at least two delays, crawl took %v", elapsed)
		}
	})
}

func TestSpiderCrawlCancellation(t *testing.T) {
	t.Parallel()

	t.Run("cancelled before start", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		wiki := newFakeWiki()
		spider, _, _ := newTestSpider(t, wiki)
		res, err := spider.Crawl(ctx, "Golden Walnut")
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if res.StopReason != StopCancelled || len(res.Visited) != 0 {
			t.Errorf("unexpected result %+v", res)
		}
	})

	t.Run("cancelled during delay", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		wiki := newFakeWiki()
		store := freq.NewStore(filepath.Join(t.TempDir(), "counts.json"))
		spider := NewSpider(wiki, store, WithLogger(discardLogger()), WithDelay(time.Hour))

		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()

		res, err := spider.Crawl(ctx, "Golden Walnut")
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if !reflect.DeepEqual(res.Visited, []model.PageID{"Golden Walnut"}) {
			t.Errorf("unexpected visited pages %v", res.Visited)
		}
	})
}

type failingStore struct{}

var errDiskFull = errors.New("disk full")

func (failingStore) MergeAndPersist(*freq.Table) (*freq.Table, error) {
	return nil, errDiskFull
}

func TestSpiderCrawlStoreError(t *testing.T) {
	t.Parallel()

	wiki := newFakeWiki()
	spider := NewSpider(wiki, failingStore{}, WithLogger(discardLogger()), WithDelay(0))

	res, err := spider.Crawl(context.Background(), "Golden Walnut")
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("expected store error, got %v", err)
	}
	if res.StopReason != StopStoreError {
		t.Errorf("unexpected stop reason %v", res.StopReason)
	}
	if len(wiki.fetchCount()) != 1 {
		t.Errorf("crawl continued after a store error: %v", wiki.fetchCount())
	}
}

func TestSpiderCrawlEmptyStart(t *testing.T) {
	t.Parallel()

	spider, _, _ := newTestSpider(t, newFakeWiki())
	if _, err := spider.Crawl(context.Background(), ""); !errors.Is(err, ErrEmptyStart) {
		t.Errorf("expected ErrEmptyStart, got %v", err)
	}
}

// memoryRecorder collects page records.
type memoryRecorder struct {
	mu      sync.Mutex
	records []model.PageRecord
}

func (r *memoryRecorder) RecordPage(_ context.Context, rec model.PageRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

func TestSpiderCrawlRecorder(t *testing.T) {
	t.Parallel()

	recorder := &memoryRecorder{}
	spider, _, _ := newTestSpider(t, newFakeWiki(), WithMaxDepth(1), WithRecorder(recorder))

	if _, err := spider.Crawl(context.Background(), "Golden Walnut"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(recorder.records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(recorder.records))
	}
	first := recorder.records[0]
	if first.Page != "Golden Walnut" || first.Status != model.PageStatusOK || first.Tokens != 2 || first.ContentHash == "" {
		t.Errorf("unexpected first record %+v", first)
	}
	var failed int
	for _, rec := range recorder.records {
		if rec.Status == model.PageStatusFailed {
			failed++
			if rec.Page != "Missing Page" || rec.Error == "" || rec.Level != 1 {
				t.Errorf("unexpected failed record %+v", rec)
			}
		}
		if rec.FetchedAt.IsZero() {
			t.Errorf("record %q has no timestamp", rec.Page)
		}
	}
	if failed != 1 {
		t.Errorf("expected 1 failed record, got %d", failed)
	}
}
