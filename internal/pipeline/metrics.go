package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/gridwatch-ng/grid-data-etl/internal/domain"
	"github.com/gridwatch-ng/grid-data-etl/internal/extract"
	"github.com/gridwatch-ng/grid-data-etl/internal/observability"
	"github.com/gridwatch-ng/grid-data-etl/internal/store"
)

// GridSource is the fixed origin tag written with every metric sample.
const GridSource = "nsong"

// MetricsResult is the externally visible outcome of one grid-metrics run.
type MetricsResult struct {
	Success bool                     `json:"success"`
	Data    *domain.GridMetricSample `json:"data,omitempty"`
	Error   string                   `json:"error,omitempty"`

	// PersistFailed distinguishes a sink rejection from a fetch failure so
	// the HTTP layer can map it to a 500.
	PersistFailed bool `json:"-"`
}

// MetricsPipeline runs the grid status page scrape end to end.
type MetricsPipeline struct {
	fetcher  PageFetcher
	sink     MetricsSink
	notifier Notifier
	url      string
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewMetricsPipeline wires a grid-metrics pipeline. notifier may be nil.
func NewMetricsPipeline(fetcher PageFetcher, sink MetricsSink, notifier Notifier, url string, logger *slog.Logger, metrics *observability.Metrics) *MetricsPipeline {
	return &MetricsPipeline{
		fetcher:  fetcher,
		sink:     sink,
		notifier: notifier,
		url:      url,
		logger:   logger,
		metrics:  metrics,
	}
}

// Run executes one extraction run: fetch the status page, extract fields via
// the strategy cascade, derive status, persist exactly one sample. Extraction
// misses degrade to nil fields; fetch and persist failures abort the run and
// surface in the result. Never panics past this boundary.
func (p *MetricsPipeline) Run(ctx context.Context) MetricsResult {
	start := time.Now()

	doc, err := p.fetcher.Page(ctx, p.url)
	if err != nil {
		p.metrics.FetchRequests.WithLabelValues("grid", "error").Inc()
		p.logger.Error("grid page fetch failed", "url", p.url, "error", err)
		return MetricsResult{Success: false, Error: err.Error()}
	}
	p.metrics.FetchRequests.WithLabelValues("grid", "success").Inc()
	p.metrics.FetchDuration.WithLabelValues("grid").Observe(time.Since(start).Seconds())

	fields, strategies := extract.GridMetrics(doc)
	for _, s := range strategies {
		p.metrics.StrategyHits.WithLabelValues(s).Inc()
	}

	sample := domain.GridMetricSample{
		GenerationMW:     fields.GenerationMW,
		FrequencyHz:      fields.FrequencyHz,
		LoadTrendPercent: fields.LoadTrendPercent,
		Status:           domain.StatusForFrequency(fields.FrequencyHz),
		Source:           GridSource,
	}

	if fields.FrequencyHz == nil {
		// Status defaults to stable with zero evidence; keep that visible.
		p.metrics.FrequencyMissing.Inc()
		p.logger.Warn("no frequency recovered, status defaulted", "status", sample.Status)
	}

	id, err := p.sink.InsertMetricSample(ctx, sample)
	if err != nil {
		p.metrics.PersistFailures.WithLabelValues(store.MetricsTable).Inc()
		p.logger.Error("metric sample persist failed", "error", err)
		return MetricsResult{Success: false, Error: err.Error(), PersistFailed: true}
	}
	sample.ID = id
	p.metrics.SamplesPersisted.Inc()

	if p.notifier != nil {
		if err := p.notifier.NotifyInsert(ctx, store.MetricsTable, id, sample); err != nil {
			p.metrics.NotifyFailures.Inc()
			p.logger.Warn("change notification failed", "table", store.MetricsTable, "error", err)
		}
	}

	p.logger.Info("grid metrics run complete",
		"status", sample.Status,
		"generation_mw", logFloat(sample.GenerationMW),
		"frequency_hz", logFloat(sample.FrequencyHz),
		"strategies", strategies,
	)
	return MetricsResult{Success: true, Data: &sample}
}

func logFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
