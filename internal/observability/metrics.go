package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// enrichment pipeline and its collaborators.
type Metrics struct {
	CandidatesConsidered prometheus.Counter
	RecordsEnriched      prometheus.Counter
	SkippedTransport     prometheus.Counter
	SkippedMissingHour   prometheus.Counter
	SkippedParse         prometheus.Counter
	StoreRows            prometheus.Gauge

	FetchAttempts prometheus.Counter
	FetchDuration prometheus.Histogram
	RunDuration   *prometheus.HistogramVec // label: job={enrich,ingest,upload}
	RunOutcomes   *prometheus.CounterVec   // labels: job, outcome={success,failure}

	// Ingestion collaborator metrics.
	DocumentsIngested prometheus.Counter
	DocumentsInvalid  prometheus.Counter
	InsertBatchFailed prometheus.Counter

	// Upload utility metrics.
	UploadsSucceeded prometheus.Counter
	UploadsFailed    prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.CandidatesConsidered,
		m.RecordsEnriched,
		m.SkippedTransport,
		m.SkippedMissingHour,
		m.SkippedParse,
		m.StoreRows,
		m.FetchAttempts,
		m.FetchDuration,
		m.RunDuration,
		m.RunOutcomes,
		m.DocumentsIngested,
		m.DocumentsInvalid,
		m.InsertBatchFailed,
		m.UploadsSucceeded,
		m.UploadsFailed,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		CandidatesConsidered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cricket_etl",
			Name:      "candidates_considered_total",
			Help:      "Schedule rows eligible and not yet enriched, per run.",
		}),
		RecordsEnriched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cricket_etl",
			Name:      "records_enriched_total",
			Help:      "Candidate rows successfully joined with an observed hour.",
		}),
		SkippedTransport: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cricket_etl",
			Name:      "skipped_transport_total",
			Help:      "Candidates skipped after exhausting fetch retries.",
		}),
		SkippedMissingHour: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cricket_etl",
			Name:      "skipped_missing_hour_total",
			Help:      "Candidates skipped because the event hour was absent from the response.",
		}),
		SkippedParse: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cricket_etl",
			Name:      "skipped_parse_total",
			Help:      "Schedule rows skipped due to malformed date, time, or coordinates.",
		}),
		StoreRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cricket_etl",
			Name:      "store_rows",
			Help:      "Row count of the enriched dataset after the last persist.",
		}),
		FetchAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cricket_etl",
			Name:      "fetch_attempts_total",
			Help:      "Archive API request attempts, including retries.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cricket_etl",
			Name:      "fetch_duration_seconds",
			Help:      "Archive API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		RunDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cricket_etl",
			Name:      "run_duration_seconds",
			Help:      "End-to-end duration of one job run.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900},
		}, []string{"job"}),
		RunOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cricket_etl",
			Name:      "run_outcomes_total",
			Help:      "Job runs by outcome.",
		}, []string{"job", "outcome"}),
		DocumentsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cricket_etl",
			Name:      "documents_ingested_total",
			Help:      "Raw JSON documents inserted into the warehouse table.",
		}),
		DocumentsInvalid: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cricket_etl",
			Name:      "documents_invalid_total",
			Help:      "Raw documents skipped because their JSON was malformed.",
		}),
		InsertBatchFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cricket_etl",
			Name:      "insert_batches_failed_total",
			Help:      "Warehouse insert batches that failed.",
		}),
		UploadsSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cricket_etl",
			Name:      "uploads_succeeded_total",
			Help:      "Local documents uploaded to the object store.",
		}),
		UploadsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cricket_etl",
			Name:      "uploads_failed_total",
			Help:      "Local document uploads that failed.",
		}),
	}
}
