// Package news implements the normalization, similarity-clustering and
// ranking core of the aggregator: parsed feeds go in, two ordered sequences
// of deduplicated stories come out.
package news

import (
	"fmt"
	"time"

	"github.com/tabgraf/sheetnews/internal/logger"
	"github.com/tabgraf/sheetnews/internal/metrics"
)

// Process runs the full pipeline over already-fetched feed documents:
// normalize each document in order, concatenate, cluster at the given
// similarity threshold and rank. The concatenation order is the document
// order, then in-feed order, which makes the result deterministic for a
// given input. now is supplied by the caller so the core never reads a
// clock.
//
// Documents with a nil feed contribute zero items. A run with no usable
// items returns an empty, well-formed Result. The only error is an
// out-of-range threshold.
func Process(docs []Document, threshold int, now time.Time) (Result, error) {
	if threshold < 0 || threshold > 100 {
		return Result{}, fmt.Errorf("similarity threshold must be between 0 and 100, got %d", threshold)
	}

	start := time.Now()
	defer func() {
		metrics.Global.RecordProcessingTime(time.Since(start))
	}()

	var items []Item
	for _, doc := range docs {
		items = append(items, Normalize(doc.Feed, doc.SourceURL)...)
	}
	metrics.Global.AddItemsNormalized(int64(len(items)))

	clusters := BuildClusters(items, threshold)
	res := Rank(clusters, now)

	metrics.Global.AddClustersFormed(int64(len(clusters)))
	metrics.Global.AddRepeatedStories(int64(len(res.Repeated)))
	logger.Info("processed feed snapshot",
		"items", len(items),
		"clusters", len(clusters),
		"repeated", len(res.Repeated),
		"unique", len(res.Unique),
	)
	return res, nil
}
