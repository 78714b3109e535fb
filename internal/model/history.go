package model

import "time"

// RunRecord describes one crawl or count invocation stored in the
// crawl history database.
type RunRecord struct {
	// ID is a ULID, so lexical order equals start order.
	ID string `json:"id"`

	// Kind is "crawl" or "count".
	Kind string `json:"kind"`

	// Start is the first page of a crawl, or the first page of a count.
	Start PageID `json:"start"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitzero"`

	PagesVisited int `json:"pages_visited"`
	PagesFailed  int `json:"pages_failed"`

	// StopReason is empty until the run finishes.
	StopReason string `json:"stop_reason,omitempty"`
}

// PageRecord is the outcome of one page inside a run.
type PageRecord struct {
	RunID         string     `json:"run_id"`
	Page          PageID     `json:"page"`
	Level         int        `json:"level"`
	Status        PageStatus `json:"status"`
	Tokens        int        `json:"tokens"`
	DistinctWords int        `json:"distinct_words"`
	ContentHash   string     `json:"content_hash,omitempty"`
	Error         string     `json:"error,omitempty"`
	FetchedAt     time.Time  `json:"fetched_at"`
}
