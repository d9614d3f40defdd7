package pipeline

import "fmt"

// Report summarizes one enrichment run with explicit per-outcome counts.
type Report struct {
	ScheduleRows       int // rows loaded from the schedule source
	StoreRows          int // rows already in the enriched store at load time
	Eligible           int // rows with event time at or before the run time
	Candidates         int // eligible rows not yet in the store
	Enriched           int // candidates joined with an observed hour
	SkippedTransport   int // candidates dropped after exhausting fetch retries
	SkippedMissingHour int // candidates whose event hour was absent from the response
	SkippedParse       int // schedule rows dropped for malformed date/time or coordinates
	Persisted          int // store row count after persist (0 when nothing was persisted)
}

// Summary renders the run outcome as a single human-readable line.
func (r *Report) Summary() string {
	if r.Candidates == 0 {
		return fmt.Sprintf("nothing new to enrich (%d schedule rows, %d eligible, %d already enriched)",
			r.ScheduleRows, r.Eligible, r.StoreRows)
	}
	return fmt.Sprintf("enriched %d of %d candidates (%d transport failures, %d missing hours, %d unparseable rows); store now holds %d rows",
		r.Enriched, r.Candidates, r.SkippedTransport, r.SkippedMissingHour, r.SkippedParse, r.Persisted)
}
