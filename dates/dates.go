// Package dates provides civil-date helpers for the presence engine.
// Attendance classification and leave policy both reason about whole
// days and clock minutes, never about wall-clock instants, so the
// helpers here normalize everything to UTC midnight.
package dates

import "time"

// DayOf truncates an instant to its civil day (UTC midnight).
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two instants fall on the same civil day.
func SameDay(a, b time.Time) bool {
	return DayOf(a).Equal(DayOf(b))
}

// DaysBetween returns whole days from a to b (exclusive of b's day
// fraction). Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(DayOf(b).Sub(DayOf(a)).Hours() / 24)
}

// InclusiveDays returns the inclusive day count of [start, end].
// A single-day range counts as 1. Zero or negative when end precedes
// start; callers validate the range before trusting the count.
func InclusiveDays(start, end time.Time) int {
	return DaysBetween(start, end) + 1
}

// Covers reports whether day falls inside the inclusive range
// [start, end], comparing civil days only.
func Covers(start, end, day time.Time) bool {
	d := DayOf(day)
	return !d.Before(DayOf(start)) && !d.After(DayOf(end))
}

// MinuteOfDay returns the clock time of an instant as minutes since
// midnight, in the instant's own location.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// NewDay builds a civil day.
func NewDay(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// At places a clock time on a civil day.
func At(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

// Sequence returns every civil day of [from, to] inclusive, in
// chronological order. Empty when to precedes from.
func Sequence(from, to time.Time) []time.Time {
	var days []time.Time
	for d := DayOf(from); !d.After(DayOf(to)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
