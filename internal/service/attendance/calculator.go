package attendance

import (
	"math"
	"time"
)

// StandardShiftMinutes is the fixed 8-hour shift that overtime is measured
// against.
const StandardShiftMinutes = 480

// Night differential band: local wall-clock hours [22:00, 24:00) and
// [00:00, 06:00).
const (
	nightBandStartHour = 22
	nightBandEndHour   = 6
)

// DurationMinutes rounds the span between two instants to whole minutes.
func DurationMinutes(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Minutes()))
}

// WorkMinutes computes total worked minutes net of breaks for a closed
// record, clamped at zero.
func WorkMinutes(timeIn, timeOut time.Time, breakMinutes int) int {
	total := DurationMinutes(timeIn, timeOut) - breakMinutes
	if total < 0 {
		total = 0
	}
	return total
}

// NightDiffHours counts whole-hour buckets of (timeIn, timeOut) whose start
// falls in the night band. Buckets align to wall-clock hour boundaries: a
// partial leading hour is never credited (the first bucket is pushed forward
// to the next boundary unless timeIn sits exactly on one), while the last
// bucket is credited in full as long as it starts before timeOut. Payroll
// parity depends on this exact alignment rule; it is coarser than a pro-rata
// split and intentionally so.
func NightDiffHours(timeIn time.Time, timeOut *time.Time) int {
	if timeOut == nil {
		return 0
	}

	bucket := hourFloor(timeIn)
	if bucket.Before(timeIn) {
		bucket = bucket.Add(time.Hour)
	}

	hours := 0
	for bucket.Before(*timeOut) {
		h := bucket.Hour()
		if h >= nightBandStartHour || h < nightBandEndHour {
			hours++
		}
		bucket = bucket.Add(time.Hour)
	}
	return hours
}

// hourFloor truncates t to its containing wall-clock hour. Built with
// time.Date rather than Time.Truncate so the boundary stays on the local
// hour across offset changes.
func hourFloor(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, t.Hour(), 0, 0, 0, t.Location())
}

// OvertimeMinutes is the portion of worked minutes beyond the standard shift.
func OvertimeMinutes(workMinutes int) int {
	if workMinutes <= StandardShiftMinutes {
		return 0
	}
	return workMinutes - StandardShiftMinutes
}

// OvertimeHours converts overtime to fractional hours for display at one
// decimal place. Not rounded here.
func OvertimeHours(workMinutes int) float64 {
	return float64(OvertimeMinutes(workMinutes)) / 60.0
}
