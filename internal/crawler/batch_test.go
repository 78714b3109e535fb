package crawler

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/nao1215/wikifreq/internal/fetch"
	"github.com/nao1215/wikifreq/internal/freq"
	"github.com/nao1215/wikifreq/internal/model"
)

func TestBatchCounterCount(t *testing.T) {
	t.Parallel()

	t.Run("counts every page and keeps order", func(t *testing.T) {
		t.Parallel()

		wiki := newFakeWiki()
		store := freq.NewStore(filepath.Join(t.TempDir(), "counts.json"))
		counter := NewBatchCounter(wiki, store, WithBatchLogger(discardLogger()), WithConcurrency(3))

		pages := []model.PageID{"Golden Walnut", "Ginger Island", "Parrot", "Volcano"}
		results, err := counter.Count(context.Background(), pages)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for i, r := range results {
			if r.Page != pages[i] {
				t.Errorf("result %d is for %q, expected %q", i, r.Page, pages[i])
			}
			if r.Err != nil || r.Tokens == 0 {
				t.Errorf("unexpected result %+v", r)
			}
		}

		table, err := store.Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if table.Count("walnut") != 3 {
			t.Errorf("concurrent merges lost counts: walnut = %d", table.Count("walnut"))
		}
	})

	t.Run("failed page does not stop the others", func(t *testing.T) {
		t.Parallel()

		wiki := newFakeWiki()
		store := freq.NewStore(filepath.Join(t.TempDir(), "counts.json"))
		recorder := &memoryRecorder{}
		counter := NewBatchCounter(wiki, store,
			WithBatchLogger(discardLogger()),
			WithBatchRecorder(recorder),
		)

		results, err := counter.Count(context.Background(), []model.PageID{"Missing Page", "Dwarf"})
		if !errors.Is(err, fetch.ErrNotFound) {
			t.Fatalf("expected joined ErrNotFound, got %v", err)
		}
		if results[0].Err == nil || results[1].Err != nil {
			t.Errorf("unexpected results %+v", results)
		}

		table, loadErr := store.Load()
		if loadErr != nil {
			t.Fatalf("unexpected error: %v", loadErr)
		}
		if table.Count("dwarf") != 1 {
			t.Errorf("expected dwarf to be counted, got %v", table.Map())
		}
		if len(recorder.records) != 2 {
			t.Errorf("expected 2 records, got %d", len(recorder.records))
		}
	})

	t.Run("store error is reported per page", func(t *testing.T) {
		t.Parallel()

		counter := NewBatchCounter(newFakeWiki(), failingStore{}, WithBatchLogger(discardLogger()))
		results, err := counter.Count(context.Background(), []model.PageID{"Dwarf"})
		if !errors.Is(err, errDiskFull) || !errors.Is(results[0].Err, errDiskFull) {
			t.Errorf("expected store error, got %v", err)
		}
	})

	t.Run("no pages", func(t *testing.T) {
		t.Parallel()

		counter := NewBatchCounter(newFakeWiki(), failingStore{})
		if _, err := counter.Count(context.Background(), nil); !errors.Is(err, ErrNoPages) {
			t.Errorf("expected ErrNoPages, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		wiki := newFakeWiki()
		counter := NewBatchCounter(wiki, failingStore{}, WithBatchLogger(discardLogger()))
		_, err := counter.Count(ctx, []model.PageID{"Dwarf", "Parrot"})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if len(wiki.fetchCount()) != 0 {
			t.Errorf("expected no fetches, got %v", wiki.fetchCount())
		}
	})
}
