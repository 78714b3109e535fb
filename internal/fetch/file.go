package fetch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nao1215/wikifreq/internal/model"
)

// DefaultLocalDir is the directory FileFetcher reads when none is configured.
const DefaultLocalDir = "local_page"

// FileFetcher reads saved pages from a directory.
// The page "Golden Walnut" is read from <dir>/Golden_Walnut.html. Paths
// are resolved with os.Root, so a title cannot escape the directory.
type FileFetcher struct {
	dir string
}

// NewFileFetcher creates a FileFetcher for dir.
func NewFileFetcher(dir string) *FileFetcher {
	return &FileFetcher{dir: dir}
}

// Path returns the file the page is read from.
func (f *FileFetcher) Path(id model.PageID) string {
	return filepath.Join(f.dir, fileName(id))
}

func fileName(id model.PageID) string {
	return id.Path() + ".html"
}

// Fetch reads the saved page. A missing file wraps ErrNotFound.
func (f *FileFetcher) Fetch(ctx context.Context, id model.PageID) (string, error) {
	source := f.Path(id)
	if id.IsEmpty() {
		return "", &Error{Page: id, Source: source, Err: ErrEmptyPage}
	}
	if err := ctx.Err(); err != nil {
		return "", &Error{Page: id, Source: source, Err: err}
	}

	root, err := os.OpenRoot(f.dir)
	if err != nil {
		return "", &Error{Page: id, Source: source, Err: fmt.Errorf("failed to open page directory: %w", err)}
	}
	defer root.Close()

	data, err := root.ReadFile(fileName(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return "", &Error{Page: id, Source: source, Err: err}
	}
	return string(data), nil
}
