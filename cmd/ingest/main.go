package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/manojclinton/cricket-analytics-etl/internal/adapter/gcs"
	"github.com/manojclinton/cricket-analytics-etl/internal/config"
	"github.com/manojclinton/cricket-analytics-etl/internal/observability"
	"github.com/manojclinton/cricket-analytics-etl/internal/warehouse"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.WarehouseDSN == "" {
		slog.Error("WAREHOUSE_DSN is required")
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	blobs, err := gcs.NewClient(ctx, cfg.Bucket, cfg.CredentialsFile)
	if err != nil {
		logger.Error("failed to create storage client", "error", err)
		os.Exit(1)
	}
	defer blobs.Close()

	db, err := gorm.Open(postgres.Open(cfg.WarehouseDSN), &gorm.Config{})
	if err != nil {
		logger.Error("failed to open warehouse connection", "error", err)
		os.Exit(1)
	}

	ingestor := warehouse.NewIngestor(db, blobs, cfg.JSONPrefix, cfg.IngestBatchSize, clockwork.NewRealClock(), logger, metrics)

	report, err := ingestor.Run(ctx)
	if err != nil {
		metrics.RunOutcomes.WithLabelValues("ingest", "failure").Inc()
		logger.Error("ingestion run failed", "error", err)
		os.Exit(1)
	}
	metrics.RunOutcomes.WithLabelValues("ingest", "success").Inc()
	logger.Info("ingestion run complete", "summary", report.Summary())
}
