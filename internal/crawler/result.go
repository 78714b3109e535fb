package crawler

import "github.com/nao1215/wikifreq/internal/model"

// StopReason explains why a crawl ended.
type StopReason int

const (
	// StopMaxDepth means every level up to the maximum depth was processed.
	StopMaxDepth StopReason = iota

	// StopExhausted means a level had no unvisited pages left.
	StopExhausted

	// StopMaxPages means the visited page ceiling was reached.
	StopMaxPages

	// StopCancelled means the context was cancelled.
	StopCancelled

	// StopStoreError means merging into the frequency store failed.
	StopStoreError
)

// String returns a human-readable representation of the stop reason.
func (r StopReason) String() string {
	switch r {
	case StopMaxDepth:
		return "max depth reached"
	case StopExhausted:
		return "no more pages"
	case StopMaxPages:
		return "max pages reached"
	case StopCancelled:
		return "cancelled"
	case StopStoreError:
		return "store error"
	default:
		return "unknown"
	}
}

// PageFailure is a page whose fetch failed during a crawl.
type PageFailure struct {
	Page  model.PageID
	Level int
	Err   error
}

// Result summarizes a crawl.
type Result struct {
	// Visited lists successfully processed pages in visit order.
	Visited []model.PageID

	// Failed lists pages whose fetch failed.
	Failed []PageFailure

	// Batches holds the pages attempted at each level.
	Batches [][]model.PageID

	// Tokens is the number of tokens merged into the store.
	Tokens int

	// StopReason explains why the crawl ended.
	StopReason StopReason
}

// Levels returns the number of levels that had pages to fetch.
func (r *Result) Levels() int {
	return len(r.Batches)
}
