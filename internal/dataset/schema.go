// Package dataset reads and writes the schedule and enriched-schedule CSV
// blobs, enforcing the canonical column layout of the enriched dataset.
package dataset

// Schedule columns, in their canonical positions.
const (
	colSeason    = "season"
	colMatchID   = "match_id"
	colCity      = "city"
	colMatchNum  = "match_num"
	colVenue     = "venue"
	colMatchDate = "match_date"
	colMatchTime = "match_time"
	colTeam1     = "team1"
	colTeam2     = "team2"
	colVenueID   = "venue_id"
	colLatitude  = "latitude"
	colLongitude = "longitude"
)

// Weather columns appended by enrichment.
const (
	colDatetime = "datetime"
	colTempC    = "temp_C"
	colHumidity = "humidity_%"
	colPressure = "pressure_hPa"
	colCloud    = "cloudcover_%"
	colRain     = "rain_mm"
	colWind     = "wind_m_s"
)

// scheduleColumns is the set every schedule file must carry. Input column
// order is irrelevant; rows are read by header name.
var scheduleColumns = []string{
	colSeason, colMatchID, colCity, colMatchNum, colVenue,
	colMatchDate, colMatchTime, colTeam1, colTeam2, colVenueID,
	colLatitude, colLongitude,
}

// enrichedColumns is the fixed output layout of the enriched dataset,
// independent of insertion order and of any upstream column ordering.
var enrichedColumns = []string{
	colSeason, colMatchID, colCity, colMatchNum, colVenue,
	colMatchDate, colMatchTime, colTeam1, colTeam2, colVenueID,
	colLatitude, colLongitude,
	colDatetime, colTempC, colHumidity, colPressure, colCloud, colRain, colWind,
}

// EnrichedColumns returns a copy of the canonical enriched header.
func EnrichedColumns() []string {
	out := make([]string, len(enrichedColumns))
	copy(out, enrichedColumns)
	return out
}
