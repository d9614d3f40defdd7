package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// eventTimeLayout parses the combined match_date + match_time text,
// e.g. "18/04/2008 20:00".
const eventTimeLayout = "02/01/2006 15:04"

// ScheduleRecord is one row of the match schedule dataset. Fields are kept
// as the source text so a record survives a round trip through the enriched
// dataset byte-for-byte.
type ScheduleRecord struct {
	Season    string
	MatchID   string
	City      string
	MatchNum  string
	Venue     string
	MatchDate string
	MatchTime string
	Team1     string
	Team2     string
	VenueID   string
	Latitude  string
	Longitude string
}

// EventTime derives the match start timestamp from MatchDate and MatchTime.
// The timestamp is a venue-local wall-clock label; it is never converted
// between zones.
func (r ScheduleRecord) EventTime() (time.Time, error) {
	t, err := time.Parse(eventTimeLayout, r.MatchDate+" "+r.MatchTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("match %s: parse event time %q %q: %w", r.MatchID, r.MatchDate, r.MatchTime, err)
	}
	return t, nil
}

// Coordinates parses the venue latitude and longitude.
func (r ScheduleRecord) Coordinates() (lat, lon float64, err error) {
	lat, err = strconv.ParseFloat(strings.TrimSpace(r.Latitude), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("match %s: parse latitude %q: %w", r.MatchID, r.Latitude, err)
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(r.Longitude), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("match %s: parse longitude %q: %w", r.MatchID, r.Longitude, err)
	}
	return lat, lon, nil
}

// CanonicalMatchID normalizes a match id for comparison. Schedule exports
// disagree on whether ids are integers or floats ("335982" vs "335982.0");
// both spellings must dedup against each other.
func CanonicalMatchID(id string) string {
	id = strings.TrimSpace(id)
	if dot := strings.IndexByte(id, '.'); dot >= 0 {
		if f, err := strconv.ParseFloat(id, 64); err == nil && f == float64(int64(f)) {
			return strconv.FormatInt(int64(f), 10)
		}
	}
	return id
}
