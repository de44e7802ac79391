package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gridwatch-ng/grid-data-etl/internal/adapter/httpapi"
	kafkaadapter "github.com/gridwatch-ng/grid-data-etl/internal/adapter/kafka"
	"github.com/gridwatch-ng/grid-data-etl/internal/config"
	"github.com/gridwatch-ng/grid-data-etl/internal/fetch"
	"github.com/gridwatch-ng/grid-data-etl/internal/observability"
	"github.com/gridwatch-ng/grid-data-etl/internal/pipeline"
	"github.com/gridwatch-ng/grid-data-etl/internal/scheduler"
	"github.com/gridwatch-ng/grid-data-etl/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}

	// Change notification is feature-flagged via NOTIFY_ENABLED.
	var notifier pipeline.Notifier
	var notifierCloser *kafkaadapter.Notifier
	if cfg.NotifyEnabled {
		n := kafkaadapter.NewNotifier(cfg.KafkaBrokers, cfg.NotifyTopic, logger)
		notifier = n
		notifierCloser = n
		logger.Info("change notification enabled", "topic", cfg.NotifyTopic)
	} else {
		logger.Info("change notification disabled")
	}

	fetcher := fetch.NewClient(cfg.FetchTimeout, cfg.UserAgent, logger)
	gridPipeline := pipeline.NewMetricsPipeline(fetcher, db, notifier, cfg.GridStatusURL, logger, metrics)
	newsPipeline := pipeline.NewNewsPipeline(fetcher, db, notifier, cfg.NewsURL, logger, metrics)

	srv := httpapi.NewServer(cfg.HTTPAddr, gridPipeline, newsPipeline, db, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var sched *scheduler.Scheduler
	if cfg.ScrapeSchedule != "" {
		sched, err = scheduler.New(cfg.ScrapeSchedule,
			func(ctx context.Context) { gridPipeline.Run(ctx) },
			func(ctx context.Context) { newsPipeline.Run(ctx) },
			logger)
		if err != nil {
			logger.Error("failed to build scheduler", "error", err)
			os.Exit(1)
		}
		sched.Start()
	} else {
		logger.Info("in-process scheduling disabled, waiting for http triggers")
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if sched != nil {
		sched.Stop()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if notifierCloser != nil {
		if err := notifierCloser.Close(); err != nil {
			logger.Error("notifier close error", "error", err)
		}
	}
	if err := db.Close(); err != nil {
		logger.Error("store close error", "error", err)
	}

	logger.Info("shutdown complete")
}
