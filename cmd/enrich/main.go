package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/manojclinton/cricket-analytics-etl/internal/adapter/gcs"
	"github.com/manojclinton/cricket-analytics-etl/internal/adapter/openmeteo"
	"github.com/manojclinton/cricket-analytics-etl/internal/config"
	"github.com/manojclinton/cricket-analytics-etl/internal/dataset"
	"github.com/manojclinton/cricket-analytics-etl/internal/observability"
	"github.com/manojclinton/cricket-analytics-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	blobs, err := gcs.NewClient(ctx, cfg.Bucket, cfg.CredentialsFile)
	if err != nil {
		logger.Error("failed to create storage client", "error", err)
		os.Exit(1)
	}
	defer blobs.Close()

	store := dataset.NewStore(blobs, cfg.ScheduleObject, cfg.EnrichedObject, logger)
	weather := openmeteo.NewClient(cfg.WeatherTimeout, clock, logger, metrics)
	p := pipeline.New(store, weather, clock, logger, metrics, cfg.Timezone, cfg.FetchPause)

	report, err := p.Run(ctx)
	if err != nil {
		metrics.RunOutcomes.WithLabelValues("enrich", "failure").Inc()
		logger.Error("enrichment run failed", "error", err)
		os.Exit(1)
	}
	metrics.RunOutcomes.WithLabelValues("enrich", "success").Inc()
	logger.Info("enrichment run complete", "summary", report.Summary())
}
