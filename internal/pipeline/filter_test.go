package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manojclinton/cricket-analytics-etl/internal/domain"
)

func TestEligible_BoundaryIsInclusive(t *testing.T) {
	now := time.Date(2008, time.April, 18, 20, 0, 0, 0, time.UTC)
	records := []domain.ScheduleRecord{
		scheduleRow("2008", "at-now", "18/04/2008", "20:00"),
		scheduleRow("2008", "one-minute-later", "18/04/2008", "20:01"),
	}

	kept, skipped := eligible(records, now, testLogger())
	assert.Zero(t, skipped)
	require.Len(t, kept, 1)
	assert.Equal(t, "at-now", kept[0].record.MatchID)
}

func TestGroupBySeason_FirstEncounterOrder(t *testing.T) {
	cands := []candidate{
		{record: domain.ScheduleRecord{Season: "2009", MatchID: "a"}},
		{record: domain.ScheduleRecord{Season: "2008", MatchID: "b"}},
		{record: domain.ScheduleRecord{Season: "2009", MatchID: "c"}},
	}

	groups := groupBySeason(cands)
	require.Len(t, groups, 2)
	assert.Equal(t, "2009", groups[0].season)
	assert.Equal(t, "2008", groups[1].season)
	require.Len(t, groups[0].records, 2)
	assert.Equal(t, "a", groups[0].records[0].record.MatchID)
	assert.Equal(t, "c", groups[0].records[1].record.MatchID)
}

func TestDedup_PreservesOrder(t *testing.T) {
	cands := []candidate{
		{record: domain.ScheduleRecord{MatchID: "1"}},
		{record: domain.ScheduleRecord{MatchID: "2"}},
		{record: domain.ScheduleRecord{MatchID: "3"}},
	}
	existing := existingKeys([]domain.EnrichedRecord{
		{ScheduleRecord: domain.ScheduleRecord{MatchID: "2.0"}},
	})

	fresh := dedup(cands, existing)
	require.Len(t, fresh, 2)
	assert.Equal(t, "1", fresh[0].record.MatchID)
	assert.Equal(t, "3", fresh[1].record.MatchID)
}
