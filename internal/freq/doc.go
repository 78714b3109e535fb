// Package freq implements the word frequency table and its JSON file store.
//
// A Table keeps one entry per distinct word together with the order in
// which words were first seen, so that sorting by count is stable and
// deterministic. A Store persists a Table as an ordered record list:
//
//	[{"word": "walnut", "count": 12}, {"word": "island", "count": 7}]
//
// Records are sorted descending by count and the whole file is rewritten
// on every merge.
package freq
