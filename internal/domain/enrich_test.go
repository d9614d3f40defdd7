package domain_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manojclinton/cricket-analytics-etl/internal/domain"
)

func TestHourLabel(t *testing.T) {
	assert.Equal(t, "2008-04-18T20:00",
		domain.HourLabel(time.Date(2008, time.April, 18, 20, 0, 0, 0, time.UTC)))
	// Minutes truncate to the containing hour.
	assert.Equal(t, "2008-04-18T20:00",
		domain.HourLabel(time.Date(2008, time.April, 18, 20, 30, 0, 0, time.UTC)))
}

func testObservation() domain.Observation {
	return domain.Observation{
		Times: []string{"2008-04-18T19:00", "2008-04-18T20:00", "2008-04-18T21:00"},
		Values: map[string][]float64{
			domain.VarTemperature: {31.0, 29.5, 28.2},
			domain.VarHumidity:    {40, 48, 55},
			domain.VarPressure:    {1005.1, 1005.8, 1006.2},
			domain.VarCloudCover:  {10, 25, 60},
			domain.VarRain:        {0, 0.2, 1.4},
			domain.VarWindSpeed:   {3.1, 4.7, 5.0},
		},
	}
}

func TestEnrich_ProjectsMatchedHour(t *testing.T) {
	rec := domain.ScheduleRecord{
		Season:    "2008",
		MatchID:   "335982",
		City:      "Bangalore",
		MatchDate: "18/04/2008",
		MatchTime: "20:00",
	}
	eventTime, err := rec.EventTime()
	require.NoError(t, err)

	got, ok := domain.Enrich(rec, eventTime, testObservation())
	require.True(t, ok)

	want := domain.EnrichedRecord{
		ScheduleRecord: rec,
		Datetime:       "2008-04-18T20:00",
		TempC:          29.5,
		HumidityPct:    48,
		PressureHPa:    1005.8,
		CloudPct:       25,
		RainMM:         0.2,
		WindMS:         4.7,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("enriched record mismatch (-want +got):\n%s", diff)
	}
}

func TestEnrich_MissingHour(t *testing.T) {
	rec := domain.ScheduleRecord{MatchID: "m"}
	eventTime := time.Date(2008, time.April, 19, 9, 0, 0, 0, time.UTC)

	_, ok := domain.Enrich(rec, eventTime, testObservation())
	assert.False(t, ok)
}

func TestEnrich_ShortVariableSeries(t *testing.T) {
	obs := testObservation()
	obs.Values[domain.VarWindSpeed] = obs.Values[domain.VarWindSpeed][:1]

	rec := domain.ScheduleRecord{MatchID: "m"}
	eventTime := time.Date(2008, time.April, 18, 20, 0, 0, 0, time.UTC)

	_, ok := domain.Enrich(rec, eventTime, obs)
	assert.False(t, ok)
}

func TestEnrich_MissingVariable(t *testing.T) {
	obs := testObservation()
	delete(obs.Values, domain.VarRain)

	rec := domain.ScheduleRecord{MatchID: "m"}
	eventTime := time.Date(2008, time.April, 18, 20, 0, 0, 0, time.UTC)

	_, ok := domain.Enrich(rec, eventTime, obs)
	assert.False(t, ok)
}

func TestObservation_HourIndex_ExactMatchOnly(t *testing.T) {
	obs := testObservation()

	_, ok := obs.HourIndex("2008-04-18T20:00:00") // trailing seconds never match
	assert.False(t, ok)
	_, ok = obs.HourIndex("2008-04-18T20:00+05:30") // offset labels never match
	assert.False(t, ok)

	idx, ok := obs.HourIndex("2008-04-18T20:00")
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}
