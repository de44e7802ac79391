package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for both scrape
// pipelines.
type Metrics struct {
	FetchRequests *prometheus.CounterVec   // labels: source={grid,news}, outcome={success,error}
	FetchDuration *prometheus.HistogramVec // labels: source

	// Grid extraction metrics.
	StrategyHits     *prometheus.CounterVec // labels: strategy
	FrequencyMissing prometheus.Counter
	SamplesPersisted prometheus.Counter

	// News extraction metrics.
	NewsCandidates   prometheus.Histogram
	NewsPersisted    prometheus.Counter
	NewsPlaceholders prometheus.Counter

	PersistFailures *prometheus.CounterVec // labels: table
	NotifyFailures  prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.StrategyHits,
		m.FrequencyMissing,
		m.SamplesPersisted,
		m.NewsCandidates,
		m.NewsPersisted,
		m.NewsPlaceholders,
		m.PersistFailures,
		m.NotifyFailures,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "grid_etl",
			Name:      "fetch_requests_total",
			Help:      "Source page fetches by source and outcome.",
		}, []string{"source", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "grid_etl",
			Name:      "fetch_duration_seconds",
			Help:      "Source page fetch duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),
		StrategyHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "grid_etl",
			Name:      "extraction_strategy_hits_total",
			Help:      "Grid metric extraction strategies that contributed a field.",
		}, []string{"strategy"}),
		FrequencyMissing: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "grid_etl",
			Name:      "frequency_missing_total",
			Help:      "Runs where no frequency was recoverable and status defaulted to stable.",
		}),
		SamplesPersisted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "grid_etl",
			Name:      "metric_samples_persisted_total",
			Help:      "Grid metric samples written to the sink.",
		}),
		NewsCandidates: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "grid_etl",
			Name:      "news_candidates",
			Help:      "Raw news candidates extracted per run, before dedup and caps.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 10},
		}),
		NewsPersisted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "grid_etl",
			Name:      "news_items_persisted_total",
			Help:      "News items written to the sink.",
		}),
		NewsPlaceholders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "grid_etl",
			Name:      "news_placeholder_runs_total",
			Help:      "Runs where both extraction tiers missed and a placeholder was emitted.",
		}),
		PersistFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "grid_etl",
			Name:      "persist_failures_total",
			Help:      "Failed sink inserts by table.",
		}, []string{"table"}),
		NotifyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "grid_etl",
			Name:      "notify_failures_total",
			Help:      "Failed change-notification publishes.",
		}),
	}
}
