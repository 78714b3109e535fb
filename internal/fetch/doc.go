// Package fetch provides the PageFetcher capability: given a page title,
// return its raw markup or a typed *Error.
//
// Two variants exist. HTTPFetcher downloads pages from a live wiki with
// gocolly/colly, and FileFetcher reads saved pages from a local directory.
// Callers depend only on the PageFetcher interface.
package fetch
