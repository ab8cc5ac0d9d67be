package utils

import "time"

// DateKey renders a time as the canonical YYYY-MM-DD bucket key.
func DateKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// SameDay reports whether two times fall on the same calendar date,
// ignoring the time-of-day component.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// TruncateToDay strips the time-of-day component, keeping UTC.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
