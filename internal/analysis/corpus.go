package analysis

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ReferenceCorpus is a general-language word frequency source.
type ReferenceCorpus interface {
	// Frequency returns the relative frequency of word, or 0 if unknown.
	Frequency(word string) float64

	// TopN returns the n most frequent words, most frequent first.
	TopN(n int) []string
}

// FileCorpus is a ReferenceCorpus read from a word list.
//
// Each non-empty line holds a word and a non-negative number separated by
// whitespace. The number may be a raw count or a frequency; it is divided
// by the sum of all numbers. Lines starting with '#' are comments.
type FileCorpus struct {
	words  []string
	values map[string]float64
	total  float64
}

// CorpusPath returns the word list path of lang inside dir.
func CorpusPath(dir, lang string) string {
	return filepath.Join(dir, lang+".txt")
}

// LoadFileCorpus reads the word list at path.
func LoadFileCorpus(path string) (*FileCorpus, error) {
	f, err := os.Open(path) //nolint:gosec // corpus path comes from configuration
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCorpusNotFound, path)
		}
		return nil, fmt.Errorf("failed to open reference corpus: %w", err)
	}
	defer f.Close()

	return ParseCorpus(f)
}

// ParseCorpus reads a word list from r.
func ParseCorpus(r io.Reader) (*FileCorpus, error) {
	c := &FileCorpus{values: make(map[string]float64)}
	lower := cases.Lower(language.Und)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: expected \"word value\"", ErrInvalidCorpus, lineNo)
		}
		value, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("%w: line %d: bad value %q", ErrInvalidCorpus, lineNo, fields[1])
		}

		word := lower.String(norm.NFC.String(fields[0]))
		if _, ok := c.values[word]; !ok {
			c.words = append(c.words, word)
		}
		c.values[word] += value
		c.total += value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reference corpus: %w", err)
	}

	slices.SortStableFunc(c.words, func(a, b string) int {
		switch va, vb := c.values[a], c.values[b]; {
		case va > vb:
			return -1
		case va < vb:
			return 1
		default:
			return 0
		}
	})
	return c, nil
}

// Frequency returns the relative frequency of word.
func (c *FileCorpus) Frequency(word string) float64 {
	if c.total == 0 {
		return 0
	}
	return c.values[word] / c.total
}

// TopN returns up to n words ordered by descending frequency.
func (c *FileCorpus) TopN(n int) []string {
	if n < 0 || n > len(c.words) {
		n = len(c.words)
	}
	return slices.Clone(c.words[:n])
}

// Len returns the number of distinct words.
func (c *FileCorpus) Len() int {
	return len(c.words)
}
