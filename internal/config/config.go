// Package config loads service settings from environment variables,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// Object store.
	ProjectID       string
	Bucket          string
	CredentialsFile string
	ScheduleObject  string
	EnrichedObject  string

	// Weather API.
	WeatherTimeout time.Duration
	Timezone       string
	FetchPause     time.Duration

	// Warehouse ingestion.
	WarehouseDSN    string
	IngestBatchSize int
	JSONPrefix      string

	// Upload utility.
	LocalJSONDir  string
	UploadWorkers int

	// Bulk-load trigger.
	DataprocRegion  string
	DataprocCluster string
	BulkLoadJobURI  string

	// Service surface.
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	weatherTimeout, err := durationEnv("WEATHER_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	fetchPause, err := durationEnv("FETCH_PAUSE", time.Second)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	batchSize, err := intEnv("INGEST_BATCH_SIZE", 75)
	if err != nil {
		return nil, err
	}
	workers, err := intEnv("UPLOAD_WORKERS", 8)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ProjectID:       os.Getenv("GCP_PROJECT_ID"),
		Bucket:          envOrDefault("GCS_BUCKET", "cricket_analytics_src"),
		CredentialsFile: os.Getenv("GCP_CREDENTIALS_FILE"),
		ScheduleObject:  envOrDefault("SCHEDULE_OBJECT", "schedule/ipl_full_schedule.csv"),
		EnrichedObject:  envOrDefault("ENRICHED_OBJECT", "schedule/ipl_full_schedule_with_weather.csv"),

		WeatherTimeout: weatherTimeout,
		Timezone:       envOrDefault("WEATHER_TIMEZONE", "Asia/Kolkata"),
		FetchPause:     fetchPause,

		WarehouseDSN:    os.Getenv("WAREHOUSE_DSN"),
		IngestBatchSize: batchSize,
		JSONPrefix:      os.Getenv("JSON_PREFIX"),

		LocalJSONDir:  os.Getenv("LOCAL_JSON_DIR"),
		UploadWorkers: workers,

		DataprocRegion:  envOrDefault("DATAPROC_REGION", "europe-west3"),
		DataprocCluster: os.Getenv("DATAPROC_CLUSTER"),
		BulkLoadJobURI:  os.Getenv("BULK_LOAD_JOB_URI"),

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.Bucket == "" {
		return nil, errors.New("GCS_BUCKET is required")
	}
	if cfg.IngestBatchSize <= 0 {
		return nil, errors.New("INGEST_BATCH_SIZE must be positive")
	}
	if cfg.UploadWorkers <= 0 {
		return nil, errors.New("UPLOAD_WORKERS must be positive")
	}
	if cfg.FetchPause < 0 {
		return nil, errors.New("FETCH_PAUSE must not be negative")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
