// Package model defines the core data structures used throughout wikifreq.
//
// This package contains the following main types:
//   - PageID: canonical wiki page title used as crawl and fetch key
//   - Page: fetched page markup with its content hash
//   - PageStatus: outcome of processing one page during a crawl
//   - ComparisonRow: one row of a relative-frequency analysis
//   - RunRecord / PageRecord: crawl history persisted by the database package
//
// Models live in their own package so that the crawler, analysis, report
// and database packages can share them without import cycles.
package model
