// Package crawler drives the breadth-first wiki crawl and the word count
// aggregation behind it.
//
// # Architecture
//
// Spider walks the link graph level by level. Each level's batch is the
// frontier minus the pages already visited, so every page is fetched at
// most once per crawl. For each page the spider:
//
//  1. fetches the markup through a fetch.PageFetcher
//  2. tokenizes the content region and merges the counts into the store
//  3. extracts article links into the next level's frontier
//  4. waits for the politeness delay before the next fetch
//
// A failed fetch is logged, recorded and skipped; the crawl continues.
// A failed store merge aborts the crawl, because continuing would silently
// drop counts.
//
// # Depth
//
// Depth counts link hops from the start page. With max depth 0 only the
// start page is fetched; with max depth 1 the start page and the pages it
// links to are fetched.
//
// # Usage
//
//	spider := crawler.NewSpider(fetcher, store, crawler.WithMaxDepth(2))
//	result, err := spider.Crawl(ctx, model.NewPageID("Golden Walnut"))
//
// BatchCounter counts a fixed list of pages concurrently. Merges still go
// through the store one at a time.
package crawler
