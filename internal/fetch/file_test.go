package fetch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nao1215/wikifreq/internal/model"
)

func TestFileFetcherFetch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Golden_Walnut.html"), []byte("<p>walnut</p>"), 0o600); err != nil {
		t.Fatal(err)
	}

	f := NewFileFetcher(dir)

	t.Run("reads the page file", func(t *testing.T) {
		t.Parallel()

		markup, err := f.Fetch(context.Background(), model.NewPageID(" Golden Walnut "))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if markup != "<p>walnut</p>" {
			t.Errorf("unexpected markup %q", markup)
		}
	})

	t.Run("missing page wraps ErrNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := f.Fetch(context.Background(), "Missing")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		var fetchErr *Error
		if !errors.As(err, &fetchErr) || fetchErr.Source != filepath.Join(dir, "Missing.html") {
			t.Errorf("unexpected error %v", err)
		}
	})

	t.Run("titles cannot escape the directory", func(t *testing.T) {
		t.Parallel()

		_, err := f.Fetch(context.Background(), "../secret")
		var fetchErr *Error
		if !errors.As(err, &fetchErr) {
			t.Errorf("expected *Error, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := f.Fetch(ctx, "Golden Walnut"); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("missing directory is a fetch error", func(t *testing.T) {
		t.Parallel()

		_, err := NewFileFetcher(filepath.Join(dir, "nope")).Fetch(context.Background(), "Golden Walnut")
		var fetchErr *Error
		if !errors.As(err, &fetchErr) {
			t.Errorf("expected *Error, got %v", err)
		}
	})
}

func TestFetchersImplementPageFetcher(t *testing.T) {
	t.Parallel()

	var _ PageFetcher = (*FileFetcher)(nil)
	var _ PageFetcher = (*HTTPFetcher)(nil)
}
