package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridwatch-ng/grid-data-etl/internal/domain"
)

func TestSerializeChange(t *testing.T) {
	frozen := time.Date(2026, 3, 15, 6, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(frozen))
	t.Cleanup(func() { domain.SetClock(nil) })

	id := uuid.New()
	gen := 4876.45
	sample := domain.GridMetricSample{
		ID:           id,
		GenerationMW: &gen,
		Status:       domain.StatusStable,
		Source:       "nsong",
	}

	msg, err := serializeChange("grid_metrics", id, sample)
	require.NoError(t, err)

	assert.Equal(t, []byte("grid_metrics"), msg.Key)

	var event changeEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, "grid_metrics", event.Table)
	assert.Equal(t, id, event.ID)
	assert.Equal(t, frozen, event.OccurredAt)

	record, err := json.Marshal(event.Record)
	require.NoError(t, err)
	assert.Contains(t, string(record), `"generation_mw":4876.45`)
	assert.Contains(t, string(record), `"status":"stable"`)

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "table", msg.Headers[0].Key)
	assert.Equal(t, []byte("grid_metrics"), msg.Headers[0].Value)
	assert.Equal(t, "occurred_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2026-03-15T06:00:00Z"), msg.Headers[1].Value)
}

func TestSerializeChange_NewsItem(t *testing.T) {
	id := uuid.New()
	item := domain.NewsItem{
		ID:    id,
		Title: "Commission Announces New Tariff Framework",
		Type:  domain.NewsUpdate,
	}

	msg, err := serializeChange("grid_news", id, item)
	require.NoError(t, err)

	var event changeEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, "grid_news", event.Table)

	record, err := json.Marshal(event.Record)
	require.NoError(t, err)
	assert.Contains(t, string(record), `"type":"update"`)
}
