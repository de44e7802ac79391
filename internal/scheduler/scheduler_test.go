package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_InvalidSpec(t *testing.T) {
	noop := func(context.Context) {}
	_, err := New("not a cron spec", noop, noop, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCRAPE_SCHEDULE")
}

func TestNew_ValidSpecs(t *testing.T) {
	noop := func(context.Context) {}
	for _, spec := range []string{"*/30 * * * *", "0 * * * *", "@hourly"} {
		t.Run(spec, func(t *testing.T) {
			s, err := New(spec, noop, noop, testLogger())
			require.NoError(t, err)
			require.NotNil(t, s)
		})
	}
}

func TestScheduler_FiresBothPipelines(t *testing.T) {
	var gridRuns, newsRuns atomic.Int32

	// @every is the shortest cadence robfig/cron offers without seconds.
	s, err := New("@every 10ms",
		func(context.Context) { gridRuns.Add(1) },
		func(context.Context) { newsRuns.Add(1) },
		testLogger())
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	deadline := time.After(2 * time.Second)
	for gridRuns.Load() == 0 || newsRuns.Load() == 0 {
		select {
		case <-deadline:
			t.Fatalf("scheduler did not fire: grid=%d news=%d", gridRuns.Load(), newsRuns.Load())
		case <-time.After(10 * time.Millisecond):
		}
	}
}
