package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manojclinton/cricket-analytics-etl/internal/domain"
)

func TestScheduleRecord_EventTime(t *testing.T) {
	rec := domain.ScheduleRecord{MatchID: "335982", MatchDate: "18/04/2008", MatchTime: "20:00"}

	et, err := rec.EventTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2008, time.April, 18, 20, 0, 0, 0, time.UTC), et)
}

func TestScheduleRecord_EventTime_Malformed(t *testing.T) {
	cases := []struct {
		name string
		date string
		tm   string
	}{
		{"iso date", "2008-04-18", "20:00"},
		{"us order", "04/18/2008", "20:00"},
		{"empty time", "18/04/2008", ""},
		{"words", "April 18", "8pm"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := domain.ScheduleRecord{MatchID: "x", MatchDate: tc.date, MatchTime: tc.tm}
			_, err := rec.EventTime()
			assert.Error(t, err)
		})
	}
}

func TestScheduleRecord_Coordinates(t *testing.T) {
	rec := domain.ScheduleRecord{MatchID: "1", Latitude: "12.9716", Longitude: " 77.5946 "}

	lat, lon, err := rec.Coordinates()
	require.NoError(t, err)
	assert.InDelta(t, 12.9716, lat, 1e-9)
	assert.InDelta(t, 77.5946, lon, 1e-9)

	rec.Latitude = "north"
	_, _, err = rec.Coordinates()
	assert.Error(t, err)
}

func TestCanonicalMatchID(t *testing.T) {
	cases := map[string]string{
		"335982":     "335982",
		"335982.0":   "335982",
		" 335982 ":   "335982",
		"335982.5":   "335982.5",
		"qualifier2": "qualifier2",
		"":           "",
	}
	for in, want := range cases {
		assert.Equal(t, want, domain.CanonicalMatchID(in), "input %q", in)
	}
}
