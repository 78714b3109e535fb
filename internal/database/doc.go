// Package database provides SQLite-based crawl history for wikifreq.
//
// CrawlDB stores one row per crawl or count run and one row per page
// processed inside a run: its level, status, token counts, content hash
// and fetch error. The history command reads it back.
//
// The database is a single file opened through modernc.org/sqlite, a
// CGO-free driver, with WAL journaling enabled by default. Run IDs are
// ULIDs, so ordering by ID orders runs by start time.
package database
