package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/manojclinton/cricket-analytics-etl/internal/domain"
)

// ParseSchedule decodes the schedule CSV. Columns are located by header
// name, so the source may order or pad them however it likes.
func ParseSchedule(data []byte) ([]domain.ScheduleRecord, error) {
	header, rows, err := readCSV(data)
	if err != nil {
		return nil, fmt.Errorf("parse schedule: %w", err)
	}

	idx, err := columnIndex(header, scheduleColumns)
	if err != nil {
		return nil, fmt.Errorf("parse schedule: %w", err)
	}

	records := make([]domain.ScheduleRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.ScheduleRecord{
			Season:    row[idx[colSeason]],
			MatchID:   row[idx[colMatchID]],
			City:      row[idx[colCity]],
			MatchNum:  row[idx[colMatchNum]],
			Venue:     row[idx[colVenue]],
			MatchDate: row[idx[colMatchDate]],
			MatchTime: row[idx[colMatchTime]],
			Team1:     row[idx[colTeam1]],
			Team2:     row[idx[colTeam2]],
			VenueID:   row[idx[colVenueID]],
			Latitude:  row[idx[colLatitude]],
			Longitude: row[idx[colLongitude]],
		})
	}
	return records, nil
}

// ParseEnriched decodes a previously persisted enriched dataset. Reading by
// header name means a store written with a stale column order still loads,
// and the next persist restores the canonical layout.
func ParseEnriched(data []byte) ([]domain.EnrichedRecord, error) {
	header, rows, err := readCSV(data)
	if err != nil {
		return nil, fmt.Errorf("parse enriched dataset: %w", err)
	}
	if len(header) == 0 && len(rows) == 0 {
		return nil, nil
	}

	idx, err := columnIndex(header, enrichedColumns)
	if err != nil {
		return nil, fmt.Errorf("parse enriched dataset: %w", err)
	}

	records := make([]domain.EnrichedRecord, 0, len(rows))
	for i, row := range rows {
		rec := domain.EnrichedRecord{
			ScheduleRecord: domain.ScheduleRecord{
				Season:    row[idx[colSeason]],
				MatchID:   row[idx[colMatchID]],
				City:      row[idx[colCity]],
				MatchNum:  row[idx[colMatchNum]],
				Venue:     row[idx[colVenue]],
				MatchDate: row[idx[colMatchDate]],
				MatchTime: row[idx[colMatchTime]],
				Team1:     row[idx[colTeam1]],
				Team2:     row[idx[colTeam2]],
				VenueID:   row[idx[colVenueID]],
				Latitude:  row[idx[colLatitude]],
				Longitude: row[idx[colLongitude]],
			},
			Datetime: row[idx[colDatetime]],
		}

		for col, dst := range map[string]*float64{
			colTempC:    &rec.TempC,
			colHumidity: &rec.HumidityPct,
			colPressure: &rec.PressureHPa,
			colCloud:    &rec.CloudPct,
			colRain:     &rec.RainMM,
			colWind:     &rec.WindMS,
		} {
			v, err := strconv.ParseFloat(row[idx[col]], 64)
			if err != nil {
				return nil, fmt.Errorf("parse enriched dataset: row %d column %s: %w", i+1, col, err)
			}
			*dst = v
		}
		records = append(records, rec)
	}
	return records, nil
}

// MarshalEnriched encodes rows in the canonical column order.
func MarshalEnriched(records []domain.EnrichedRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(EnrichedColumns()); err != nil {
		return nil, fmt.Errorf("marshal enriched dataset: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.Season, rec.MatchID, rec.City, rec.MatchNum, rec.Venue,
			rec.MatchDate, rec.MatchTime, rec.Team1, rec.Team2, rec.VenueID,
			rec.Latitude, rec.Longitude,
			rec.Datetime,
			formatFloat(rec.TempC),
			formatFloat(rec.HumidityPct),
			formatFloat(rec.PressureHPa),
			formatFloat(rec.CloudPct),
			formatFloat(rec.RainMM),
			formatFloat(rec.WindMS),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("marshal enriched dataset: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("marshal enriched dataset: %w", err)
	}
	return buf.Bytes(), nil
}

// Merge appends newly enriched rows to the prior store content. Existing
// rows are never mutated or removed.
func Merge(old, fresh []domain.EnrichedRecord) []domain.EnrichedRecord {
	merged := make([]domain.EnrichedRecord, 0, len(old)+len(fresh))
	merged = append(merged, old...)
	merged = append(merged, fresh...)
	return merged
}

func readCSV(data []byte) ([]string, [][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	return rows[0], rows[1:], nil
}

func columnIndex(header, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return idx, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
