// Package store is the Postgres sink for scraped grid data. Both tables are
// append-only: rows are inserted by the pipelines and read back by the
// dashboard, never updated.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/gridwatch-ng/grid-data-etl/internal/domain"
)

const (
	// MetricsTable and NewsTable are the two independent sink namespaces.
	MetricsTable = "grid_metrics"
	NewsTable    = "grid_news"

	maxOpenConns    = 10
	maxIdleConns    = 2
	connMaxLifetime = 5 * time.Minute
	pingTimeout     = 5 * time.Second
)

// Store wraps the Postgres connection pool.
type Store struct {
	db *sqlx.DB
}

// Open connects to Postgres using a lib/pq DSN or URL and verifies the
// connection with a ping.
func Open(databaseURL string) (*Store, error) {
	db, err := sqlx.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// NewWithDB wraps an existing connection, for tests.
func NewWithDB(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// InsertMetricSample appends one grid metric sample. The observation
// timestamp is assigned by the database, not the caller.
func (s *Store) InsertMetricSample(ctx context.Context, sample domain.GridMetricSample) (uuid.UUID, error) {
	id := uuid.New()
	const query = `
		INSERT INTO grid_metrics (id, generation_mw, frequency_hz, load_trend_percent, status, source)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		id, sample.GenerationMW, sample.FrequencyHz, sample.LoadTrendPercent, sample.Status, sample.Source)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert metric sample: %w", err)
	}
	return id, nil
}

// InsertNewsItem appends one news item.
func (s *Store) InsertNewsItem(ctx context.Context, item domain.NewsItem) (uuid.UUID, error) {
	id := uuid.New()
	const query = `
		INSERT INTO grid_news (id, title, description, type, region, published_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		id, item.Title, item.Description, item.Type, item.Region, item.PublishedAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert news item: %w", err)
	}
	return id, nil
}

// LatestMetricSamples returns the most recent samples, newest first. This is
// the read contract the dashboard consumes.
func (s *Store) LatestMetricSamples(ctx context.Context, limit int) ([]domain.GridMetricSample, error) {
	const query = `
		SELECT id, generation_mw, frequency_hz, load_trend_percent, status, source, observed_at
		FROM grid_metrics
		ORDER BY observed_at DESC
		LIMIT $1
	`
	var samples []domain.GridMetricSample
	if err := s.db.SelectContext(ctx, &samples, query, limit); err != nil {
		return nil, fmt.Errorf("select metric samples: %w", err)
	}
	return samples, nil
}

// LatestNewsItems returns the most recently inserted news items, newest first.
func (s *Store) LatestNewsItems(ctx context.Context, limit int) ([]domain.NewsItem, error) {
	const query = `
		SELECT id, title, description, type, region, published_at, created_at
		FROM grid_news
		ORDER BY created_at DESC
		LIMIT $1
	`
	var items []domain.NewsItem
	if err := s.db.SelectContext(ctx, &items, query, limit); err != nil {
		return nil, fmt.Errorf("select news items: %w", err)
	}
	return items, nil
}

// Ping reports sink reachability, used by the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
