// Package dates holds the calendar-date arithmetic shared by the
// availability resolver, the price calculator and the repositories.
// Stays are half-open intervals [checkIn, checkOut): the check-out day
// is never slept in and never charged.
package dates

import "time"

// Normalize truncates a timestamp to its calendar date at UTC midnight.
// All stay boundaries are stored and compared in this form.
func Normalize(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Day builds a normalized calendar date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Nights returns the number of nights in [checkIn, checkOut).
// A one-night stay spans exactly one calendar day.
func Nights(checkIn, checkOut time.Time) int {
	return int(Normalize(checkOut).Sub(Normalize(checkIn)).Hours() / 24)
}

// Overlaps reports whether the half-open intervals [start1, end1) and
// [start2, end2) share at least one night.
func Overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && end1.After(start2)
}

// Covers reports whether day falls inside [start, end).
func Covers(start, end, day time.Time) bool {
	return !day.Before(start) && day.Before(end)
}

// Within reports whether [innerStart, innerEnd) lies entirely inside
// [outerStart, outerEnd). Equal boundaries count as inside.
func Within(innerStart, innerEnd, outerStart, outerEnd time.Time) bool {
	return !innerStart.Before(outerStart) && !innerEnd.After(outerEnd)
}

// EachNight calls fn once for every night of [checkIn, checkOut), in order.
func EachNight(checkIn, checkOut time.Time, fn func(night time.Time)) {
	for night := Normalize(checkIn); night.Before(checkOut); night = night.AddDate(0, 0, 1) {
		fn(night)
	}
}
