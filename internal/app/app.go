// Package app wires the pipeline together: configuration, fetching,
// processing and rendering. One Run is one complete snapshot; nothing is
// kept between invocations.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/tabgraf/sheetnews/internal/config"
	"github.com/tabgraf/sheetnews/internal/feeds"
	"github.com/tabgraf/sheetnews/internal/logger"
	"github.com/tabgraf/sheetnews/internal/metrics"
	"github.com/tabgraf/sheetnews/internal/news"
	"github.com/tabgraf/sheetnews/internal/retry"
	"github.com/tabgraf/sheetnews/internal/sheets"
)

func Run() error {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	urls, err := feeds.Load(cfg.FeedsConfigPath)
	if err != nil {
		return fmt.Errorf("load feed list: %w", err)
	}
	if len(urls) == 0 {
		logger.Warn("feed list is empty, nothing to aggregate", "path", cfg.FeedsConfigPath)
	}
	logger.Info("starting aggregation run",
		"feeds", len(urls),
		"threshold", cfg.SimilarityThreshold,
	)

	ctx := context.Background()
	fetcher := feeds.NewFetcher(cfg.RequestTimeout, retry.RetryConfig{
		MaxAttempts: cfg.RetryAttempts,
		Delay:       cfg.RetryDelay,
		Backoff:     true,
	}, cfg.FetchConcurrency)
	docs := fetcher.FetchAll(ctx, urls)

	res, err := news.Process(docs, cfg.SimilarityThreshold, time.Now())
	if err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("process feeds: %w", err)
	}

	renderer, err := sheets.NewRenderer(ctx, cfg.SpreadsheetID, cfg.SheetID, cfg.CredentialsFile)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}
	if err := renderer.Render(ctx, res); err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}

	metrics.Global.SetLastRun()
	logger.Info("aggregation run finished",
		"repeated", len(res.Repeated),
		"unique", len(res.Unique),
	)
	return nil
}
