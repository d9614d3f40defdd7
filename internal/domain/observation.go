package domain

// Observation is one day of hourly weather data for a single location.
// Times is the ordered axis of ISO-hour labels; Values holds one array per
// variable, index-aligned to Times. A variable may be missing entirely (the
// API omitted it) or shorter than the axis (trailing nulls dropped during
// decoding); consumers must bounds-check before indexing.
type Observation struct {
	Times  []string
	Values map[string][]float64
}

// HourIndex returns the axis position of the given ISO-hour label.
// Matching is exact string equality; a label in a different offset or
// format never matches.
func (o Observation) HourIndex(hour string) (int, bool) {
	for i, t := range o.Times {
		if t == hour {
			return i, true
		}
	}
	return 0, false
}

// At returns the value of a variable at the given axis index.
func (o Observation) At(variable string, idx int) (float64, bool) {
	series, ok := o.Values[variable]
	if !ok || idx >= len(series) {
		return 0, false
	}
	return series[idx], true
}
