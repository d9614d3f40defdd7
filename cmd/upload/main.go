package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/manojclinton/cricket-analytics-etl/internal/adapter/gcs"
	"github.com/manojclinton/cricket-analytics-etl/internal/config"
	"github.com/manojclinton/cricket-analytics-etl/internal/observability"
	"github.com/manojclinton/cricket-analytics-etl/internal/uploader"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.LocalJSONDir == "" {
		slog.Error("LOCAL_JSON_DIR is required")
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

	u := uploader.New(blobs, cfg.JSONPrefix, cfg.UploadWorkers, clockwork.NewRealClock(), logger, metrics)

	report, err := u.Run(ctx, cfg.LocalJSONDir)
	if err != nil {
		metrics.RunOutcomes.WithLabelValues("upload", "failure").Inc()
		if report != nil {
			logger.Error("upload run finished with failures", "error", err, "summary", report.Summary())
		} else {
			logger.Error("upload run failed", "error", err)
		}
		os.Exit(1)
	}
	metrics.RunOutcomes.WithLabelValues("upload", "success").Inc()
	logger.Info("upload run complete", "summary", report.Summary())
}
