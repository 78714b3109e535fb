package freq

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// DefaultStoreFile is the default file name of the frequency store.
const DefaultStoreFile = "word-counts.json"

// Store is a frequency table persisted as a JSON record list.
//
// MergeAndPersist calls on one Store are serialized, so concurrent
// goroutines in a single process never lose updates. Separate processes
// writing the same file are not coordinated and the last writer wins.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a Store backed by the file at path.
// The file is not touched until the first Load or MergeAndPersist.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted table.
// It returns ErrStoreNotFound when the file does not exist and an error
// wrapping ErrCorruptStore when the content is not a valid record list.
func (s *Store) Load() (*Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (*Table, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrStoreNotFound, s.path)
		}
		return nil, fmt.Errorf("failed to read frequency store: %w", err)
	}
	return decode(data)
}

// MergeAndPersist adds counts to the persisted table, re-sorts it and
// rewrites the file. A missing file is treated as an empty table; a
// corrupt file aborts the merge without modifying it. The merged table
// is returned.
func (s *Store) MergeAndPersist(counts *Table) (*Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.load()
	if err != nil {
		if !errors.Is(err, ErrStoreNotFound) {
			return nil, err
		}
		table = NewTable()
	}

	table.Merge(counts)
	table.Sort()

	if err := s.write(table); err != nil {
		return nil, err
	}
	return table, nil
}

// write replaces the store file with table through a temporary file in
// the same directory, so readers never observe a partial write.
func (s *Store) write(table *Table) error {
	data, err := json.MarshalIndent(table.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode frequency store: %w", err)
	}
	if table.entries == nil {
		data = []byte("[]")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary store file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // already renamed on success

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write frequency store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write frequency store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace frequency store: %w", err)
	}
	return nil
}

// decode parses a record list and validates it.
func decode(data []byte) (*Table, error) {
	var records []Entry
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptStore, err)
	}
	// An empty store is written as [], so null is not a record list.
	if records == nil {
		return nil, fmt.Errorf("%w: not a record list", ErrCorruptStore)
	}

	table := NewTable()
	for i, r := range records {
		switch {
		case r.Word == "":
			return nil, fmt.Errorf("%w: record %d has an empty word", ErrCorruptStore, i)
		case r.Count < 0:
			return nil, fmt.Errorf("%w: record %d has a negative count", ErrCorruptStore, i)
		case table.Has(r.Word):
			return nil, fmt.Errorf("%w: duplicate word %q", ErrCorruptStore, r.Word)
		}
		table.Add(r.Word, r.Count)
	}
	return table, nil
}
