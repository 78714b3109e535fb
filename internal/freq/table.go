package freq

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// Entry is one word and its occurrence count.
type Entry struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Table maps words to counts and remembers first-seen order.
// The zero value is an empty table ready to use.
type Table struct {
	entries []Entry
	index   map[string]int
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{}
}

// Summarize counts the occurrences of each token in tokens.
// Words appear in the order of their first occurrence.
func Summarize(tokens []string) *Table {
	t := NewTable()
	for _, tok := range tokens {
		t.Add(tok, 1)
	}
	return t
}

// Add increases the count of word by n, appending the word when it is new.
func (t *Table) Add(word string, n int) {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if i, ok := t.index[word]; ok {
		t.entries[i].Count += n
		return
	}
	t.index[word] = len(t.entries)
	t.entries = append(t.entries, Entry{Word: word, Count: n})
}

// Merge adds every count of other into t. Words new to t are appended in
// other's order. other is not modified.
func (t *Table) Merge(other *Table) {
	if other == nil {
		return
	}
	for _, e := range other.entries {
		t.Add(e.Word, e.Count)
	}
}

// Sort orders entries descending by count. Ties keep their current order.
func (t *Table) Sort() {
	slices.SortStableFunc(t.entries, func(a, b Entry) int {
		return cmp.Compare(b.Count, a.Count)
	})
	for i, e := range t.entries {
		t.index[e.Word] = i
	}
}

// Count returns the count of word, or 0 if the word is absent.
func (t *Table) Count(word string) int {
	if i, ok := t.index[word]; ok {
		return t.entries[i].Count
	}
	return 0
}

// Has reports whether word has an entry.
func (t *Table) Has(word string) bool {
	_, ok := t.index[word]
	return ok
}

// Len returns the number of distinct words.
func (t *Table) Len() int {
	return len(t.entries)
}

// Total returns the sum of all counts.
func (t *Table) Total() int {
	total := 0
	for _, e := range t.entries {
		total += e.Count
	}
	return total
}

// Entries returns a copy of the entries in table order.
func (t *Table) Entries() []Entry {
	return slices.Clone(t.entries)
}

// Top returns up to n entries in table order.
func (t *Table) Top(n int) []Entry {
	if n < 0 || n > len(t.entries) {
		n = len(t.entries)
	}
	return slices.Clone(t.entries[:n])
}

// Map returns the table as a word to count map.
func (t *Table) Map() map[string]int {
	m := make(map[string]int, len(t.entries))
	for _, e := range t.entries {
		m[e.Word] = e.Count
	}
	return m
}

// String renders the table as "word: count" lines.
func (t *Table) String() string {
	var sb strings.Builder
	for _, e := range t.entries {
		sb.WriteString(e.Word)
		sb.WriteString(": ")
		sb.WriteString(strconv.Itoa(e.Count))
		sb.WriteByte('\n')
	}
	return sb.String()
}
