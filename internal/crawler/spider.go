package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/wikifreq/internal/extract"
	"github.com/nao1215/wikifreq/internal/fetch"
	"github.com/nao1215/wikifreq/internal/model"
)

// Default crawl limits.
const (
	// DefaultMaxDepth fetches the start page, its links and their links.
	DefaultMaxDepth = 2

	// DefaultDelay is the pause between two page fetches.
	DefaultDelay = 1 * time.Second
)

// Spider crawls a wiki breadth-first from a start page and merges the word
// counts of every visited page into a store.
//
// A Spider holds no per-crawl state, so one Spider can run several crawls
// one after another. Each Crawl call starts with an empty visited set.
type Spider struct {
	processor

	links *extract.LinkExtractor

	// maxDepth is the number of link hops from the start page.
	maxDepth int

	// maxPages caps the number of visited pages. 0 means no cap.
	maxPages int

	// delay is the politeness pause after each successfully processed page.
	delay time.Duration

	// sleep waits for d or until ctx is done.
	sleep func(ctx context.Context, d time.Duration) error
}

// SpiderOption configures a Spider.
type SpiderOption func(*Spider)

// WithMaxDepth sets the maximum crawl depth.
// 0 = only the starting page, 1 = starting page plus linked pages, etc.
func WithMaxDepth(depth int) SpiderOption {
	return func(s *Spider) {
		if depth >= 0 {
			s.maxDepth = depth
		}
	}
}

// WithMaxPages sets the maximum number of pages to visit. 0 disables the cap.
func WithMaxPages(maxPages int) SpiderOption {
	return func(s *Spider) {
		if maxPages >= 0 {
			s.maxPages = maxPages
		}
	}
}

// WithDelay sets the delay between requests.
func WithDelay(d time.Duration) SpiderOption {
	return func(s *Spider) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) SpiderOption {
	return func(s *Spider) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecorder sets a Recorder that receives every page outcome.
func WithRecorder(r Recorder) SpiderOption {
	return func(s *Spider) {
		s.recorder = r
	}
}

// WithTokenizer replaces the default tokenizer.
func WithTokenizer(t *extract.Tokenizer) SpiderOption {
	return func(s *Spider) {
		if t != nil {
			s.tokenizer = t
		}
	}
}

// WithLinkExtractor replaces the default link extractor.
func WithLinkExtractor(e *extract.LinkExtractor) SpiderOption {
	return func(s *Spider) {
		if e != nil {
			s.links = e
		}
	}
}

// NewSpider creates a Spider that fetches pages with fetcher and merges
// counts into store.
func NewSpider(fetcher fetch.PageFetcher, store Aggregator, opts ...SpiderOption) *Spider {
	s := &Spider{
		processor: processor{
			fetcher:   fetcher,
			store:     store,
			tokenizer: extract.NewTokenizer(),
			logger:    slog.Default(),
		},
		links:    extract.NewLinkExtractor(),
		maxDepth: DefaultMaxDepth,
		delay:    DefaultDelay,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Crawl visits start and the pages reachable from it within the maximum
// depth. Pages that fail to fetch are reported in the result and do not
// stop the crawl. The returned error is non-nil only when the store
// rejects a merge or ctx is cancelled; the partial result is returned
// with it.
func (s *Spider) Crawl(ctx context.Context, start model.PageID) (*Result, error) {
	if start.IsEmpty() {
		return nil, ErrEmptyStart
	}

	res := &Result{}
	visited := NewPageSet()
	failed := NewPageSet()
	frontier := NewPageSet(start)

levels:
	for level := 0; ; level++ {
		if level > s.maxDepth {
			res.StopReason = StopMaxDepth
			break
		}
		if s.pageLimitReached(visited) {
			res.StopReason = StopMaxPages
			break
		}

		batch := frontier.Difference(visited, failed).Sorted()
		frontier = NewPageSet()
		if len(batch) == 0 {
			res.StopReason = StopExhausted
			break
		}
		res.Batches = append(res.Batches, batch)

		s.logger.Info("crawling level", "level", level, "pages", len(batch), "visited", visited.Len())

		lastLevel := level == s.maxDepth
		for i, id := range batch {
			if s.pageLimitReached(visited) {
				res.StopReason = StopMaxPages
				break levels
			}
			if err := ctx.Err(); err != nil {
				res.StopReason = StopCancelled
				return res, err
			}

			page, err := s.fetchPage(ctx, id, level)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					res.StopReason = StopCancelled
					return res, ctxErr
				}
				failed.Add(id)
				res.Failed = append(res.Failed, PageFailure{Page: id, Level: level, Err: err})
				continue
			}

			out, err := s.aggregate(ctx, page, level)
			if err != nil {
				res.StopReason = StopStoreError
				return res, fmt.Errorf("failed to merge counts of %q: %w", id, err)
			}
			visited.Add(id)
			res.Visited = append(res.Visited, id)
			res.Tokens += out.tokens

			if !lastLevel {
				for _, link := range s.links.Extract(page.Markup) {
					if !visited.Has(link) {
						frontier.Add(link)
					}
				}
			}

			// No fetch follows the final page of the final level.
			if (lastLevel && i == len(batch)-1) || s.pageLimitReached(visited) {
				continue
			}
			if err := s.sleep(ctx, s.delay); err != nil {
				res.StopReason = StopCancelled
				return res, err
			}
		}
	}

	s.logger.Info("crawl finished",
		"visited", len(res.Visited),
		"failed", len(res.Failed),
		"reason", res.StopReason.String(),
	)
	return res, nil
}

func (s *Spider) pageLimitReached(visited PageSet) bool {
	return s.maxPages > 0 && visited.Len() >= s.maxPages
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// IsFetchError reports whether err came from a PageFetcher.
func IsFetchError(err error) bool {
	var fe *fetch.Error
	return errors.As(err, &fe)
}
