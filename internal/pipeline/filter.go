package pipeline

import (
	"log/slog"
	"time"

	"github.com/manojclinton/cricket-analytics-etl/internal/domain"
)

// candidate pairs a schedule record with its parsed event time so later
// stages never re-parse.
type candidate struct {
	record    domain.ScheduleRecord
	eventTime time.Time
}

// eligible keeps records whose event time is at or before now, preserving
// relative order. Rows with malformed date/time text are reported and
// excluded; one bad row never aborts the pass.
func eligible(records []domain.ScheduleRecord, now time.Time, logger *slog.Logger) (kept []candidate, skippedParse int) {
	for _, rec := range records {
		et, err := rec.EventTime()
		if err != nil {
			logger.Warn("skipping unparseable schedule row", "error", err)
			skippedParse++
			continue
		}
		if et.After(now) {
			continue
		}
		kept = append(kept, candidate{record: rec, eventTime: et})
	}
	return kept, skippedParse
}

// dedup drops candidates whose canonical match id is already in the store
// key set, preserving order. The key set is a snapshot taken before any
// fetching starts.
func dedup(cands []candidate, existing map[string]struct{}) []candidate {
	var fresh []candidate
	for _, c := range cands {
		if _, done := existing[domain.CanonicalMatchID(c.record.MatchID)]; done {
			continue
		}
		fresh = append(fresh, c)
	}
	return fresh
}

// existingKeys builds the dedup snapshot from the current store content.
func existingKeys(rows []domain.EnrichedRecord) map[string]struct{} {
	keys := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		keys[domain.CanonicalMatchID(r.MatchID)] = struct{}{}
	}
	return keys
}

// seasonGroup is one partition of the candidate set. Partitioning exists
// for pacing and progress reporting only; it changes no correctness
// property.
type seasonGroup struct {
	season  string
	records []candidate
}

// groupBySeason partitions candidates by season, keeping in-group record
// order and iterating groups in first-encountered order.
func groupBySeason(cands []candidate) []seasonGroup {
	var groups []seasonGroup
	index := make(map[string]int)
	for _, c := range cands {
		i, ok := index[c.record.Season]
		if !ok {
			i = len(groups)
			index[c.record.Season] = i
			groups = append(groups, seasonGroup{season: c.record.Season})
		}
		groups[i].records = append(groups[i].records, c)
	}
	return groups
}
