package warehouse

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/manojclinton/cricket-analytics-etl/internal/blob"
	"github.com/manojclinton/cricket-analytics-etl/internal/observability"
)

// IngestReport summarizes one ingestion run.
type IngestReport struct {
	Listed   int // JSON objects found under the prefix
	New      int // objects not yet in the warehouse table
	Invalid  int // objects skipped for malformed JSON
	Inserted int // rows written
	Failed   int // rows in batches that failed to insert
}

// Summary renders the run outcome as a single human-readable line.
func (r *IngestReport) Summary() string {
	return fmt.Sprintf("ingested %d of %d new documents (%d listed, %d invalid, %d failed)",
		r.Inserted, r.New, r.Listed, r.Invalid, r.Failed)
}

// Ingestor copies new JSON documents from the object store into the
// warehouse table in bounded batches.
type Ingestor struct {
	db        *gorm.DB
	store     blob.Store
	prefix    string
	batchSize int
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewIngestor creates an Ingestor reading objects under prefix.
func NewIngestor(db *gorm.DB, store blob.Store, prefix string, batchSize int, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Ingestor {
	return &Ingestor{
		db:        db,
		store:     store,
		prefix:    prefix,
		batchSize: batchSize,
		clock:     clock,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run lists JSON objects under the prefix, skips file names already present
// in the table, validates each document's JSON, and inserts the rest in
// batches. A malformed document or a failed batch is reported and skipped;
// later documents and batches proceed.
func (i *Ingestor) Run(ctx context.Context) (*IngestReport, error) {
	start := i.clock.Now()
	defer func() {
		i.metrics.RunDuration.WithLabelValues("ingest").Observe(i.clock.Since(start).Seconds())
	}()

	if err := i.db.WithContext(ctx).AutoMigrate(&Document{}); err != nil {
		return nil, fmt.Errorf("migrate warehouse table: %w", err)
	}

	var existingNames []string
	if err := i.db.WithContext(ctx).Model(&Document{}).Pluck("file_name", &existingNames).Error; err != nil {
		return nil, fmt.Errorf("load existing file names: %w", err)
	}
	existing := make(map[string]struct{}, len(existingNames))
	for _, name := range existingNames {
		existing[name] = struct{}{}
	}
	i.logger.Info("warehouse scan complete", "existing_rows", len(existing))

	objects, err := i.store.List(ctx, i.prefix)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	report := &IngestReport{}
	var docs []Document
	for _, object := range objects {
		if !strings.HasSuffix(strings.ToLower(object), ".json") {
			continue
		}
		report.Listed++

		fileName := strings.TrimPrefix(object, i.prefix)
		if _, done := existing[fileName]; done {
			continue
		}
		report.New++

		raw, err := i.store.Download(ctx, object)
		if err != nil {
			i.logger.Warn("failed to download document, skipping", "object", object, "error", err)
			report.Failed++
			continue
		}
		if !json.Valid(raw) {
			i.logger.Warn("invalid JSON document, skipping", "object", object)
			report.Invalid++
			i.metrics.DocumentsInvalid.Inc()
			continue
		}

		docs = append(docs, Document{
			FileName:        fileName,
			Content:         string(raw),
			UploadTimestamp: i.clock.Now().UTC(),
		})
	}

	if len(docs) == 0 {
		i.logger.Info("no new documents to ingest")
		return report, nil
	}

	for batchNum, batch := range chunk(docs, i.batchSize) {
		err := i.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&batch).Error
		if err != nil {
			i.logger.Error("insert batch failed", "batch", batchNum+1, "size", len(batch), "error", err)
			report.Failed += len(batch)
			i.metrics.InsertBatchFailed.Inc()
			continue
		}
		report.Inserted += len(batch)
		i.metrics.DocumentsIngested.Add(float64(len(batch)))
		i.logger.Info("insert batch complete", "batch", batchNum+1, "size", len(batch))
	}

	i.logger.Info("ingestion complete",
		"listed", report.Listed,
		"new", report.New,
		"invalid", report.Invalid,
		"inserted", report.Inserted,
		"failed", report.Failed,
	)
	return report, nil
}

func chunk(docs []Document, size int) [][]Document {
	if size <= 0 {
		size = len(docs)
	}
	var batches [][]Document
	for start := 0; start < len(docs); start += size {
		end := start + size
		if end > len(docs) {
			end = len(docs)
		}
		batches = append(batches, docs[start:end])
	}
	return batches
}
