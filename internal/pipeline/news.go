package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gridwatch-ng/grid-data-etl/internal/domain"
	"github.com/gridwatch-ng/grid-data-etl/internal/extract"
	"github.com/gridwatch-ng/grid-data-etl/internal/observability"
	"github.com/gridwatch-ng/grid-data-etl/internal/store"
)

// ItemResult pairs a news item with its persist outcome, so partial failure
// is observable instead of collapsing into a single boolean.
type ItemResult struct {
	Item domain.NewsItem
	Err  error
}

// NewsResult is the externally visible outcome of one news run. Persisted
// and Failed count per-item insert outcomes; Success is false only when the
// fetch itself failed.
type NewsResult struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message,omitempty"`
	Error     string            `json:"error,omitempty"`
	Items     []domain.NewsItem `json:"items"`
	Persisted int               `json:"persisted"`
	Failed    int               `json:"failed"`
}

// NewsPipeline runs the news listing page scrape end to end.
type NewsPipeline struct {
	fetcher  PageFetcher
	sink     NewsSink
	notifier Notifier
	url      string
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewNewsPipeline wires a news pipeline. notifier may be nil.
func NewNewsPipeline(fetcher PageFetcher, sink NewsSink, notifier Notifier, url string, logger *slog.Logger, metrics *observability.Metrics) *NewsPipeline {
	return &NewsPipeline{
		fetcher:  fetcher,
		sink:     sink,
		notifier: notifier,
		url:      url,
		logger:   logger,
		metrics:  metrics,
	}
}

// Run executes one extraction run: fetch the listing page, extract headline
// candidates, normalize/dedup/classify them, and persist up to
// domain.MaxItemsPerRun rows best-effort. A single item's insert failure is
// logged and counted but does not abort the remaining inserts.
func (p *NewsPipeline) Run(ctx context.Context) NewsResult {
	start := time.Now()

	doc, err := p.fetcher.Page(ctx, p.url)
	if err != nil {
		p.metrics.FetchRequests.WithLabelValues("news", "error").Inc()
		p.logger.Error("news page fetch failed", "url", p.url, "error", err)
		return NewsResult{Success: false, Error: err.Error(), Items: []domain.NewsItem{}}
	}
	p.metrics.FetchRequests.WithLabelValues("news", "success").Inc()
	p.metrics.FetchDuration.WithLabelValues("news").Observe(time.Since(start).Seconds())

	candidates := extract.NewsCandidates(doc)
	p.metrics.NewsCandidates.Observe(float64(len(candidates)))

	items := p.buildItems(candidates)
	results := p.persistItems(ctx, items)

	persisted, failed := 0, 0
	final := make([]domain.NewsItem, 0, len(results))
	for _, r := range results {
		final = append(final, r.Item)
		if r.Err != nil {
			failed++
		} else {
			persisted++
		}
	}

	p.logger.Info("news run complete",
		"candidates", len(candidates), "persisted", persisted, "failed", failed)

	return NewsResult{
		Success:   true,
		Message:   fmt.Sprintf("extracted %d items, persisted %d", len(final), persisted),
		Items:     final,
		Persisted: persisted,
		Failed:    failed,
	}
}

// buildItems applies the uniform per-item normalization regardless of which
// tier produced the candidate: whitespace collapse, minimum length, run-scoped
// dedup, truncation, description synthesis, keyword classification. The dedup
// set is local to the run; invocations are logically independent.
//
// The placeholder is a last resort for when both extraction tiers missed
// entirely. Candidates that were extracted but all rejected as chrome or
// duplicates mean the page was readable and just had nothing new, so the run
// persists zero items.
func (p *NewsPipeline) buildItems(candidates []extract.NewsCandidate) []domain.NewsItem {
	if len(candidates) == 0 {
		p.metrics.NewsPlaceholders.Inc()
		p.logger.Warn("no news candidates extracted, emitting placeholder", "url", p.url)
		return []domain.NewsItem{domain.PlaceholderNewsItem()}
	}

	seen := make(map[string]bool, len(candidates))
	var items []domain.NewsItem

	for _, c := range candidates {
		title := domain.NormalizeTitle(c.Title)
		if len(title) <= domain.MinTitleLen {
			continue
		}
		if seen[title] {
			continue
		}
		seen[title] = true

		items = append(items, domain.NewsItem{
			Title:       domain.TruncateTitle(title),
			Description: domain.SynthesizeDescription(title),
			Type:        domain.ClassifyTitle(title),
			PublishedAt: c.PublishedAt,
		})
	}

	if len(items) > domain.MaxItemsPerRun {
		items = items[:domain.MaxItemsPerRun]
	}
	return items
}

// persistItems inserts each item independently. No transaction: partial data
// capture is preferred over a lost run.
func (p *NewsPipeline) persistItems(ctx context.Context, items []domain.NewsItem) []ItemResult {
	results := make([]ItemResult, 0, len(items))
	for _, item := range items {
		id, err := p.sink.InsertNewsItem(ctx, item)
		if err != nil {
			p.metrics.PersistFailures.WithLabelValues(store.NewsTable).Inc()
			p.logger.Error("news item persist failed", "title", item.Title, "error", err)
			results = append(results, ItemResult{Item: item, Err: err})
			continue
		}
		item.ID = id
		p.metrics.NewsPersisted.Inc()

		if p.notifier != nil {
			if err := p.notifier.NotifyInsert(ctx, store.NewsTable, id, item); err != nil {
				p.metrics.NotifyFailures.Inc()
				p.logger.Warn("change notification failed", "table", store.NewsTable, "error", err)
			}
		}
		results = append(results, ItemResult{Item: item})
	}
	return results
}
