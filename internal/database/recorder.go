package database

import (
	"context"

	"github.com/nao1215/wikifreq/internal/model"
)

// RunRecorder records pages into one run. It satisfies the crawler's
// Recorder interface.
type RunRecorder struct {
	db    *CrawlDB
	runID string
}

// Recorder returns a RunRecorder bound to runID.
func (cdb *CrawlDB) Recorder(runID string) *RunRecorder {
	return &RunRecorder{db: cdb, runID: runID}
}

// RunID returns the bound run ID.
func (r *RunRecorder) RunID() string {
	return r.runID
}

// RecordPage stores rec under the bound run.
func (r *RunRecorder) RecordPage(ctx context.Context, rec model.PageRecord) error {
	rec.RunID = r.runID
	return r.db.RecordPage(ctx, rec)
}
