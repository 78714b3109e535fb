package database

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/wikifreq/internal/model"
)

// FileName is the database file created inside the database directory.
const FileName = "wikifreq.db"

// Run kinds.
const (
	KindCrawl = "crawl"
	KindCount = "count"
)

// CrawlDB provides SQLite-based storage for crawl history.
type CrawlDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string

	// mu guards entropy, which is not safe for concurrent use.
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy

	now func() time.Time
}

// Options configures CrawlDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a CrawlDB in dbDir.
// If CreateIfNotExists is true, the directory and database file are created.
// Otherwise a missing database yields ErrDatabaseNotFound.
func Open(dbDir string, opts Options) (*CrawlDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a new file; mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cdb := &CrawlDB{
		db:      db,
		dbPath:  dbPath,
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := cdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return cdb, nil
}

// Path returns the database file path.
func (cdb *CrawlDB) Path() string {
	return cdb.dbPath
}

// Close closes the database connection.
func (cdb *CrawlDB) Close() error {
	return cdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (cdb *CrawlDB) createTables() error {
	schema := `
	-- One row per crawl or count invocation
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		start_page TEXT NOT NULL,
		started_at TEXT NOT NULL,
		finished_at TEXT,
		pages_visited INTEGER NOT NULL DEFAULT 0,
		pages_failed INTEGER NOT NULL DEFAULT 0,
		stop_reason TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	-- Pages processed inside a run, in processing order
	CREATE TABLE IF NOT EXISTS pages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		page TEXT NOT NULL,
		level INTEGER NOT NULL,
		status TEXT NOT NULL,
		tokens INTEGER NOT NULL DEFAULT 0,
		distinct_words INTEGER NOT NULL DEFAULT 0,
		content_hash TEXT NOT NULL DEFAULT '',
		error TEXT NOT NULL DEFAULT '',
		fetched_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_pages_run ON pages(run_id);
	CREATE INDEX IF NOT EXISTS idx_pages_page ON pages(page);
	CREATE INDEX IF NOT EXISTS idx_pages_hash ON pages(content_hash);
	`

	_, err := cdb.db.ExecContext(context.Background(), schema)
	return err
}

// newRunID returns a ULID for the given time.
func (cdb *CrawlDB) newRunID(t time.Time) string {
	cdb.mu.Lock()
	defer cdb.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), cdb.entropy).String()
}

// BeginRun inserts a new run and returns its ID.
func (cdb *CrawlDB) BeginRun(ctx context.Context, kind string, start model.PageID) (string, error) {
	startedAt := cdb.now().UTC()
	id := cdb.newRunID(startedAt)

	query := `
	INSERT INTO runs (id, kind, start_page, started_at)
	VALUES (?, ?, ?, ?)
	`
	if _, err := cdb.db.ExecContext(ctx, query, id, kind, start.String(), formatTimestamp(startedAt)); err != nil {
		return "", fmt.Errorf("failed to begin run: %w", err)
	}
	return id, nil
}

// FinishRun stores the totals and stop reason of a run.
func (cdb *CrawlDB) FinishRun(ctx context.Context, id string, visited, failed int, stopReason string) error {
	query := `
	UPDATE runs
	SET finished_at = ?, pages_visited = ?, pages_failed = ?, stop_reason = ?
	WHERE id = ?
	`
	result, err := cdb.db.ExecContext(ctx, query,
		formatTimestamp(cdb.now().UTC()), visited, failed, stopReason, id)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return requireRow(result, id)
}

// RecordPage stores the outcome of one page. rec.RunID must name an
// existing run.
func (cdb *CrawlDB) RecordPage(ctx context.Context, rec model.PageRecord) error {
	fetchedAt := rec.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = cdb.now()
	}

	// INSERT ... SELECT inserts nothing when the run is unknown.
	query := `
	INSERT INTO pages (run_id, page, level, status, tokens, distinct_words, content_hash, error, fetched_at)
	SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?
	WHERE EXISTS (SELECT 1 FROM runs WHERE id = ?)
	`
	result, err := cdb.db.ExecContext(ctx, query,
		rec.RunID,
		rec.Page.String(),
		rec.Level,
		rec.Status.String(),
		rec.Tokens,
		rec.DistinctWords,
		rec.ContentHash,
		rec.Error,
		formatTimestamp(fetchedAt.UTC()),
		rec.RunID,
	)
	if err != nil {
		return fmt.Errorf("failed to record page: %w", err)
	}
	return requireRow(result, rec.RunID)
}

// GetRun retrieves a run by ID.
func (cdb *CrawlDB) GetRun(ctx context.Context, id string) (*model.RunRecord, error) {
	query := `
	SELECT id, kind, start_page, started_at, finished_at, pages_visited, pages_failed, stop_reason
	FROM runs
	WHERE id = ?
	`
	run, err := scanRun(cdb.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
// A limit of zero or less returns every run.
func (cdb *CrawlDB) ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error) {
	query := `
	SELECT id, kind, start_page, started_at, finished_at, pages_visited, pages_failed, stop_reason
	FROM runs
	ORDER BY id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := cdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []model.RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}

	return runs, rows.Err()
}

// GetRunPages returns the pages of a run in processing order.
func (cdb *CrawlDB) GetRunPages(ctx context.Context, id string) ([]model.PageRecord, error) {
	query := `
	SELECT run_id, page, level, status, tokens, distinct_words, content_hash, error, fetched_at
	FROM pages
	WHERE run_id = ?
	ORDER BY id
	`
	rows, err := cdb.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get run pages: %w", err)
	}
	defer rows.Close()

	var pages []model.PageRecord
	for rows.Next() {
		var (
			rec       model.PageRecord
			page      string
			status    string
			fetchedAt string
		)
		err := rows.Scan(
			&rec.RunID,
			&page,
			&rec.Level,
			&status,
			&rec.Tokens,
			&rec.DistinctWords,
			&rec.ContentHash,
			&rec.Error,
			&fetchedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		rec.Page = model.PageID(page)
		rec.Status = model.ParsePageStatus(status)
		rec.FetchedAt = parseTimestamp(fetchedAt)
		pages = append(pages, rec)
	}

	return pages, rows.Err()
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*model.RunRecord, error) {
	var (
		run        model.RunRecord
		start      string
		startedAt  string
		finishedAt sql.NullString
	)
	err := row.Scan(
		&run.ID,
		&run.Kind,
		&start,
		&startedAt,
		&finishedAt,
		&run.PagesVisited,
		&run.PagesFailed,
		&run.StopReason,
	)
	if err != nil {
		return nil, err
	}
	run.Start = model.PageID(start)
	run.StartedAt = parseTimestamp(startedAt)
	if finishedAt.Valid {
		run.FinishedAt = parseTimestamp(finishedAt.String)
	}
	return &run, nil
}

func requireRow(result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999",
}

func formatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
