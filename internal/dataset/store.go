package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/manojclinton/cricket-analytics-etl/internal/blob"
	"github.com/manojclinton/cricket-analytics-etl/internal/domain"
)

const csvContentType = "text/csv"

// Store reads the schedule and reads/writes the enriched dataset as CSV
// objects in a blob store.
type Store struct {
	blobs        blob.Store
	scheduleName string
	enrichedName string
	logger       *slog.Logger
}

// NewStore creates a dataset store over the given blob store and object names.
func NewStore(blobs blob.Store, scheduleName, enrichedName string, logger *slog.Logger) *Store {
	return &Store{
		blobs:        blobs,
		scheduleName: scheduleName,
		enrichedName: enrichedName,
		logger:       logger,
	}
}

// CheckReadiness verifies the schedule source is reachable. Enrichment can
// recover from every other absence, but a run without its input is pointless,
// so traffic is refused until the object is visible.
func (s *Store) CheckReadiness(ctx context.Context) error {
	ok, err := s.blobs.Exists(ctx, s.scheduleName)
	if err != nil {
		return fmt.Errorf("schedule source unreachable: %w", err)
	}
	if !ok {
		return fmt.Errorf("schedule object %s not found", s.scheduleName)
	}
	return nil
}

// LoadSchedule downloads and decodes the schedule dataset. A missing
// schedule object is an error; the run cannot proceed without its input.
func (s *Store) LoadSchedule(ctx context.Context) ([]domain.ScheduleRecord, error) {
	data, err := s.blobs.Download(ctx, s.scheduleName)
	if err != nil {
		return nil, fmt.Errorf("load schedule %s: %w", s.scheduleName, err)
	}
	return ParseSchedule(data)
}

// LoadEnriched downloads and decodes the enriched dataset. A missing object
// is a valid first-run state and yields an empty dataset.
func (s *Store) LoadEnriched(ctx context.Context) ([]domain.EnrichedRecord, error) {
	data, err := s.blobs.Download(ctx, s.enrichedName)
	if errors.Is(err, blob.ErrNotFound) {
		s.logger.Info("no enriched dataset yet, starting fresh", "object", s.enrichedName)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load enriched dataset %s: %w", s.enrichedName, err)
	}
	return ParseEnriched(data)
}

// SaveEnriched replaces the enriched dataset. The new content is uploaded to
// a temporary object first and then copied onto the final name, so the store
// is never observably absent: readers see the old generation until the copy
// lands, then the new one.
func (s *Store) SaveEnriched(ctx context.Context, records []domain.EnrichedRecord) error {
	data, err := MarshalEnriched(records)
	if err != nil {
		return err
	}

	tmp := fmt.Sprintf("%s.tmp-%d", s.enrichedName, time.Now().UnixNano())
	if err := s.blobs.Upload(ctx, tmp, data, csvContentType); err != nil {
		return fmt.Errorf("save enriched dataset: upload %s: %w", tmp, err)
	}
	if err := s.blobs.Copy(ctx, tmp, s.enrichedName); err != nil {
		return fmt.Errorf("save enriched dataset: swap %s: %w", s.enrichedName, err)
	}
	if err := s.blobs.Delete(ctx, tmp); err != nil {
		// The swap already succeeded; a stranded temp object is only clutter.
		s.logger.Warn("failed to delete temp object after swap", "object", tmp, "error", err)
	}

	s.logger.Info("enriched dataset persisted", "object", s.enrichedName, "rows", len(records))
	return nil
}
