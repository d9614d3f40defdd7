// Package pipeline sequences one enrichment run: load, filter, dedup,
// season-batched paced fetching, merge, persist.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/manojclinton/cricket-analytics-etl/internal/dataset"
	"github.com/manojclinton/cricket-analytics-etl/internal/domain"
	"github.com/manojclinton/cricket-analytics-etl/internal/observability"
)

// DatasetStore provides the schedule input and the enriched output dataset.
type DatasetStore interface {
	LoadSchedule(ctx context.Context) ([]domain.ScheduleRecord, error)
	LoadEnriched(ctx context.Context) ([]domain.EnrichedRecord, error)
	SaveEnriched(ctx context.Context, records []domain.EnrichedRecord) error
}

// WeatherClient fetches one day of hourly observations for a location.
type WeatherClient interface {
	FetchHourly(ctx context.Context, lat, lon float64, date string, variables []string, timezone string) (domain.Observation, error)
}

// Pipeline runs the schedule-weather enrichment end to end.
type Pipeline struct {
	store    DatasetStore
	weather  WeatherClient
	clock    clockwork.Clock
	logger   *slog.Logger
	metrics  *observability.Metrics
	timezone string
	pause    time.Duration
}

// New creates a Pipeline. pause is the delay enforced between successive
// fetches within a season group.
func New(store DatasetStore, weather WeatherClient, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics, timezone string, pause time.Duration) *Pipeline {
	return &Pipeline{
		store:    store,
		weather:  weather,
		clock:    clock,
		logger:   logger,
		metrics:  metrics,
		timezone: timezone,
		pause:    pause,
	}
}

// Run executes one enrichment pass. Only two conditions fail the run: a
// missing or unreadable schedule source, and a persist failure. Every
// per-record problem downstream of loading degrades to a skip that is
// counted in the returned Report.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	start := p.clock.Now()
	defer func() {
		p.metrics.RunDuration.WithLabelValues("enrich").Observe(p.clock.Since(start).Seconds())
	}()

	schedule, err := p.store.LoadSchedule(ctx)
	if err != nil {
		return nil, err
	}
	p.logger.Info("schedule loaded", "rows", len(schedule))

	existing, err := p.store.LoadEnriched(ctx)
	if err != nil {
		return nil, err
	}
	p.logger.Info("enriched store loaded", "rows", len(existing))

	report := &Report{ScheduleRows: len(schedule), StoreRows: len(existing)}

	now := p.clock.Now()
	cands, skippedParse := eligible(schedule, now, p.logger)
	report.Eligible = len(cands)
	report.SkippedParse = skippedParse

	fresh := dedup(cands, existingKeys(existing))
	report.Candidates = len(fresh)
	p.metrics.CandidatesConsidered.Add(float64(len(fresh)))

	if len(fresh) == 0 {
		p.logger.Info("nothing new to enrich")
		return report, nil
	}

	var enriched []domain.EnrichedRecord
	for _, group := range groupBySeason(fresh) {
		p.logger.Info("processing season", "season", group.season, "matches", len(group.records))
		for i, cand := range group.records {
			if rec, ok := p.fetchAndEnrich(ctx, cand, report); ok {
				enriched = append(enriched, rec)
			}
			if i < len(group.records)-1 {
				if !p.sleep(ctx, p.pause) {
					return report, ctx.Err()
				}
			}
		}
	}
	report.Enriched = len(enriched)

	merged := dataset.Merge(existing, enriched)
	if err := p.store.SaveEnriched(ctx, merged); err != nil {
		return report, fmt.Errorf("persist enriched dataset: %w", err)
	}
	report.Persisted = len(merged)
	p.metrics.StoreRows.Set(float64(len(merged)))

	p.logger.Info("run complete",
		"candidates", report.Candidates,
		"enriched", report.Enriched,
		"skipped_transport", report.SkippedTransport,
		"skipped_missing_hour", report.SkippedMissingHour,
		"skipped_parse", report.SkippedParse,
		"store_rows", report.Persisted,
	)
	return report, nil
}

// fetchAndEnrich handles one candidate: fetch the event date's observations
// and align them to the event hour. Failures classify into the report and
// never escape.
func (p *Pipeline) fetchAndEnrich(ctx context.Context, cand candidate, report *Report) (domain.EnrichedRecord, bool) {
	rec := cand.record

	lat, lon, err := rec.Coordinates()
	if err != nil {
		p.logger.Warn("skipping match with bad coordinates", "match_id", rec.MatchID, "error", err)
		report.SkippedParse++
		p.metrics.SkippedParse.Inc()
		return domain.EnrichedRecord{}, false
	}

	date := cand.eventTime.Format("2006-01-02")
	obs, err := p.weather.FetchHourly(ctx, lat, lon, date, domain.HourlyVariables, p.timezone)
	if err != nil {
		p.logger.Warn("skipping match after fetch failure", "match_id", rec.MatchID, "date", date, "error", err)
		report.SkippedTransport++
		p.metrics.SkippedTransport.Inc()
		return domain.EnrichedRecord{}, false
	}

	out, ok := domain.Enrich(rec, cand.eventTime, obs)
	if !ok {
		p.logger.Warn("skipping match with no matching hour",
			"match_id", rec.MatchID,
			"hour", domain.HourLabel(cand.eventTime),
		)
		report.SkippedMissingHour++
		p.metrics.SkippedMissingHour.Inc()
		return domain.EnrichedRecord{}, false
	}

	p.metrics.RecordsEnriched.Inc()
	p.logger.Debug("match enriched", "match_id", rec.MatchID, "datetime", out.Datetime)
	return out, true
}

func (p *Pipeline) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := p.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
