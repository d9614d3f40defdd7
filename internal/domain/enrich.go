package domain

import "time"

// Hourly variables requested from the archive API, in request order.
const (
	VarTemperature = "temperature_2m"
	VarHumidity    = "relativehumidity_2m"
	VarPressure    = "pressure_msl"
	VarCloudCover  = "cloudcover"
	VarRain        = "rain"
	VarWindSpeed   = "wind_speed_10m"
)

// HourlyVariables is the fixed variable list sent with every archive request.
var HourlyVariables = []string{
	VarTemperature,
	VarHumidity,
	VarPressure,
	VarCloudCover,
	VarRain,
	VarWindSpeed,
}

// EnrichedRecord is a schedule record joined with the weather observed at
// the match start hour.
type EnrichedRecord struct {
	ScheduleRecord

	Datetime    string  // matched ISO-hour label, e.g. "2008-04-18T20:00"
	TempC       float64 // temperature_2m
	HumidityPct float64 // relativehumidity_2m
	PressureHPa float64 // pressure_msl
	CloudPct    float64 // cloudcover
	RainMM      float64 // rain
	WindMS      float64 // wind_speed_10m
}

// HourLabel formats an event time as the ISO-hour label used on observation
// axes, truncating minutes: 18/04/2008 20:30 -> "2008-04-18T20:00".
func HourLabel(t time.Time) string {
	return t.Truncate(time.Hour).Format("2006-01-02T15:04")
}

// Enrich aligns an observation to the record's event hour and projects the
// hourly variables into an EnrichedRecord. ok is false when the hour is not
// on the observation's time axis or a variable series does not cover it;
// that is a data-availability gap, not an error.
func Enrich(rec ScheduleRecord, eventTime time.Time, obs Observation) (EnrichedRecord, bool) {
	hour := HourLabel(eventTime)
	idx, ok := obs.HourIndex(hour)
	if !ok {
		return EnrichedRecord{}, false
	}

	out := EnrichedRecord{ScheduleRecord: rec, Datetime: hour}
	for _, v := range HourlyVariables {
		val, ok := obs.At(v, idx)
		if !ok {
			return EnrichedRecord{}, false
		}
		switch v {
		case VarTemperature:
			out.TempC = val
		case VarHumidity:
			out.HumidityPct = val
		case VarPressure:
			out.PressureHPa = val
		case VarCloudCover:
			out.CloudPct = val
		case VarRain:
			out.RainMM = val
		case VarWindSpeed:
			out.WindMS = val
		}
	}
	return out, true
}
