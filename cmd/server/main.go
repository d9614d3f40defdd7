package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/manojclinton/cricket-analytics-etl/internal/adapter/dataproc"
	"github.com/manojclinton/cricket-analytics-etl/internal/adapter/gcs"
	httpadapter "github.com/manojclinton/cricket-analytics-etl/internal/adapter/http"
	"github.com/manojclinton/cricket-analytics-etl/internal/adapter/openmeteo"
	"github.com/manojclinton/cricket-analytics-etl/internal/config"
	"github.com/manojclinton/cricket-analytics-etl/internal/dataset"
	"github.com/manojclinton/cricket-analytics-etl/internal/observability"
	"github.com/manojclinton/cricket-analytics-etl/internal/pipeline"
	"github.com/manojclinton/cricket-analytics-etl/internal/warehouse"
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

	enrich := httpadapter.RunnerFunc(func(ctx context.Context) (string, error) {
		report, err := p.Run(ctx)
		if err != nil {
			metrics.RunOutcomes.WithLabelValues("enrich", "failure").Inc()
			return "", err
		}
		metrics.RunOutcomes.WithLabelValues("enrich", "success").Inc()
		return report.Summary(), nil
	})

	// Ingestion and the bulk-load trigger are optional surfaces; each is
	// enabled only when its configuration is present.
	var ingest httpadapter.Runner
	if cfg.WarehouseDSN != "" {
		db, err := gorm.Open(postgres.Open(cfg.WarehouseDSN), &gorm.Config{})
		if err != nil {
			logger.Error("failed to open warehouse connection", "error", err)
			os.Exit(1)
		}
		ingestor := warehouse.NewIngestor(db, blobs, cfg.JSONPrefix, cfg.IngestBatchSize, clock, logger, metrics)
		ingest = httpadapter.RunnerFunc(func(ctx context.Context) (string, error) {
			report, err := ingestor.Run(ctx)
			if err != nil {
				metrics.RunOutcomes.WithLabelValues("ingest", "failure").Inc()
				return "", err
			}
			metrics.RunOutcomes.WithLabelValues("ingest", "success").Inc()
			return report.Summary(), nil
		})
	} else {
		logger.Info("warehouse ingestion disabled, WAREHOUSE_DSN not set")
	}

	var bulkLoad httpadapter.Runner
	if cfg.DataprocCluster != "" && cfg.BulkLoadJobURI != "" {
		trigger, err := dataproc.NewTrigger(ctx, cfg.ProjectID, cfg.DataprocRegion, cfg.DataprocCluster, cfg.BulkLoadJobURI, logger)
		if err != nil {
			logger.Error("failed to create dataproc trigger", "error", err)
			os.Exit(1)
		}
		bulkLoad = httpadapter.RunnerFunc(func(ctx context.Context) (string, error) {
			jobID, err := trigger.LoadNewDocuments(ctx)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("bulk-load job submitted: %s", jobID), nil
		})
	} else {
		logger.Info("bulk-load trigger disabled, DATAPROC_CLUSTER or BULK_LOAD_JOB_URI not set")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, store, enrich, ingest, bulkLoad, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
}
