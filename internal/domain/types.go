package domain

import (
	"time"

	"github.com/google/uuid"
)

// GridStatus is the qualitative grid health state derived from frequency.
type GridStatus string

const (
	StatusStable   GridStatus = "stable"
	StatusStressed GridStatus = "stressed"
	StatusCritical GridStatus = "critical"
)

// NewsType tags a headline by severity/category.
type NewsType string

const (
	NewsAlert  NewsType = "alert"
	NewsUpdate NewsType = "update"
	NewsInfo   NewsType = "info"
)

// GridMetricSample is one observation of grid state. Numeric fields are nil
// when the source page yielded no recoverable value. Samples are append-only:
// once persisted they are never updated.
type GridMetricSample struct {
	ID               uuid.UUID  `json:"id,omitempty" db:"id"`
	GenerationMW     *float64   `json:"generation_mw" db:"generation_mw"`
	FrequencyHz      *float64   `json:"frequency_hz" db:"frequency_hz"`
	LoadTrendPercent *float64   `json:"load_trend_percent" db:"load_trend_percent"`
	Status           GridStatus `json:"status" db:"status"`
	Source           string     `json:"source" db:"source"`

	// ObservedAt is assigned by the datastore at insert time; it is only
	// populated on rows read back from the sink.
	ObservedAt time.Time `json:"observed_at,omitzero" db:"observed_at"`
}

// NewsItem is one extracted headline. Description is synthesized, not
// scraped. Region is always nil in current extraction; the column exists for
// forward compatibility.
type NewsItem struct {
	ID          uuid.UUID  `json:"id,omitempty" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Type        NewsType   `json:"type" db:"type"`
	Region      *string    `json:"region" db:"region"`
	PublishedAt *time.Time `json:"published_at" db:"published_at"`

	CreatedAt time.Time `json:"created_at,omitzero" db:"created_at"`
}
