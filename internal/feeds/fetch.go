// Package feeds loads the configured feed list and fetches every feed into
// a parsed document, isolating per-feed failures.
package feeds

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/tabgraf/sheetnews/internal/logger"
	"github.com/tabgraf/sheetnews/internal/metrics"
	"github.com/tabgraf/sheetnews/internal/news"
	"github.com/tabgraf/sheetnews/internal/retry"
)

// Fetcher downloads and parses feeds with a bounded number of parallel
// requests.
type Fetcher struct {
	parser      *gofeed.Parser
	retry       retry.RetryConfig
	concurrency int
}

func NewFetcher(timeout time.Duration, rc retry.RetryConfig, concurrency int) *Fetcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Fetcher{parser: parser, retry: rc, concurrency: concurrency}
}

// FetchAll fetches every URL and returns one document per URL, in the exact
// order of the input list regardless of which fetch finishes first — the
// clustering result depends on item order, so the concatenation order must
// be reproducible across runs. A failed feed yields a document with a nil
// feed (zero items) and is logged, never returned as an error.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []news.Document {
	docs := make([]news.Document, len(urls))
	sem := make(chan struct{}, f.concurrency)
	var wg sync.WaitGroup

	for i, url := range urls {
		docs[i] = news.Document{SourceURL: url}

		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			feed, err := f.fetch(ctx, url)
			if err != nil {
				logger.Warn("feed fetch failed, skipping", "url", url, "error", err)
				metrics.Global.IncrementFeedsFailed()
				return
			}
			docs[i].Feed = feed
			metrics.Global.IncrementFeedsFetched()
			logger.Info("feed loaded", "url", url, "items", len(feed.Items))
		}(i, url)
	}

	wg.Wait()
	return docs
}

func (f *Fetcher) fetch(ctx context.Context, url string) (*gofeed.Feed, error) {
	var feed *gofeed.Feed
	err := retry.WithRetry(ctx, f.retry, func() error {
		parsed, err := f.parser.ParseURLWithContext(url, ctx)
		if err != nil {
			return err
		}
		feed = parsed
		return nil
	})
	return feed, err
}
