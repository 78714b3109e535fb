package crawler

import (
	"slices"

	"github.com/nao1215/wikifreq/internal/model"
)

// PageSet is a set of canonical page titles.
type PageSet map[model.PageID]struct{}

// NewPageSet creates a set holding ids.
func NewPageSet(ids ...model.PageID) PageSet {
	s := make(PageSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id.
func (s PageSet) Add(id model.PageID) {
	s[id] = struct{}{}
}

// Has reports whether id is in the set.
func (s PageSet) Has(id model.PageID) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of pages in the set.
func (s PageSet) Len() int {
	return len(s)
}

// Difference returns the pages of s that are in none of others.
func (s PageSet) Difference(others ...PageSet) PageSet {
	out := make(PageSet, len(s))
	for id := range s {
		excluded := false
		for _, o := range others {
			if o.Has(id) {
				excluded = true
				break
			}
		}
		if !excluded {
			out.Add(id)
		}
	}
	return out
}

// Sorted returns the pages in lexical order.
func (s PageSet) Sorted() []model.PageID {
	ids := make([]model.PageID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
