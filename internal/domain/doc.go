// Package domain models the IPL match schedule and the hourly weather
// observations used to enrich it.
//
// # Schedule conventions
//
// The schedule dataset is a CSV exported from the fixture source. Dates are
// DD/MM/YYYY and start times are 24-hour HH:MM, both in the venue-local
// timezone (Asia/Kolkata for every IPL venue). The two columns combine into
// the match start timestamp; a row that violates either format is unusable
// on its own but must never take the rest of the schedule down with it.
//
// Match ids are unique across seasons. Depending on which tool produced the
// schedule export they appear either as integers ("335982") or as floats
// ("335982.0"); [CanonicalMatchID] collapses both spellings so a match is
// never fetched twice.
//
// # Observations
//
// The Open-Meteo archive API returns hourly series as parallel arrays: one
// ordered axis of ISO-hour labels ("2008-04-18T20:00") plus one value array
// per requested variable, index-aligned to the axis. An observation answers
// a query for a specific hour only when that exact label is present on the
// axis; see [Observation.HourIndex] and [Enrich].
package domain
