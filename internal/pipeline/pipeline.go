// Package pipeline orchestrates the two scrape pipelines: fetch, extract,
// classify, persist. Each Run is one stateless extraction run; the two
// pipelines share no state and may execute concurrently.
package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/gridwatch-ng/grid-data-etl/internal/domain"
)

// PageFetcher retrieves a source page as raw text.
type PageFetcher interface {
	Page(ctx context.Context, url string) (string, error)
}

// MetricsSink persists grid metric samples.
type MetricsSink interface {
	InsertMetricSample(ctx context.Context, sample domain.GridMetricSample) (uuid.UUID, error)
}

// NewsSink persists news items.
type NewsSink interface {
	InsertNewsItem(ctx context.Context, item domain.NewsItem) (uuid.UUID, error)
}

// Notifier publishes change events after successful inserts. Implementations
// must be best-effort; pipelines log publish failures and move on.
type Notifier interface {
	NotifyInsert(ctx context.Context, table string, id uuid.UUID, record any) error
}
