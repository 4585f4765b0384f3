package domain

import "time"

// IsEditable reports whether a record may still be mutated: true iff its
// RecordedAt falls on the same calendar date as now in the municipal
// timezone. After the day rolls over the record is locked for good —
// historical reports are immutable by end of day.
func IsEditable(record PotholeRecord, now time.Time, loc *time.Location) bool {
	return SameDay(record.RecordedAt, now, loc)
}

// SameDay reports whether a and b fall on the same calendar date in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// ParseTimezone parses a timezone string, returning UTC as fallback.
func ParseTimezone(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}
