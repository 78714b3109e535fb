// Package main provides the entry point for the wikifreq CLI.
//
// wikifreq counts the words of wiki articles, crawls a wiki breadth-first
// to build a persistent word frequency table, and compares that table with
// the typical word frequencies of a language.
//
// Usage:
//
//	wikifreq count "Golden Walnut"
//	wikifreq crawl "Golden Walnut" --depth 2
//	wikifreq analyze --mode article --count 20
//
// See --help for all available options.
package main

// main is the entry point for wikifreq.
func main() {
	Execute()
}
