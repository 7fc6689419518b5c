package utils

import "time"

// DayWindow is the canonical business-day boundary: a closed timestamp range
// covering one calendar day in the caller's local time. Every day-scoped
// operation resolves its window through this type so attendance marking and
// reporting agree on what "today" means.
type DayWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w DayWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// WindowFromMillis builds a window from client-supplied start/end of day in
// Unix milliseconds.
func WindowFromMillis(startMs, endMs int64) DayWindow {
	return DayWindow{
		Start: time.UnixMilli(startMs).UTC(),
		End:   time.UnixMilli(endMs).UTC(),
	}
}

// DayWindowAt computes the local-midnight-to-midnight window containing t for
// a client whose UTC offset is offsetMinutes (positive when behind UTC, the
// JavaScript getTimezoneOffset convention).
func DayWindowAt(t time.Time, offsetMinutes int) DayWindow {
	local := t.UTC().Add(-time.Duration(offsetMinutes) * time.Minute)
	y, m, d := local.Date()
	startLocal := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	endLocal := startLocal.Add(24*time.Hour - time.Millisecond)
	off := time.Duration(offsetMinutes) * time.Minute
	return DayWindow{Start: startLocal.Add(off), End: endLocal.Add(off)}
}

// LocalDate formats t as the client-local YYYY-MM-DD string for bucketing.
func LocalDate(t time.Time, offsetMinutes int) string {
	return t.UTC().Add(-time.Duration(offsetMinutes) * time.Minute).Format("2006-01-02")
}

// ShiftEndOn returns the absolute time at which a shift ending at
// endMinutes-from-midnight finishes on the client-local calendar day
// containing ref.
func ShiftEndOn(ref time.Time, endMinutes int, offsetMinutes int) time.Time {
	local := ref.UTC().Add(-time.Duration(offsetMinutes) * time.Minute)
	y, m, d := local.Date()
	endLocal := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(endMinutes) * time.Minute)
	return endLocal.Add(time.Duration(offsetMinutes) * time.Minute)
}
