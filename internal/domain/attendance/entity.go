package attendance

import (
	"time"
)

// Record status values. A record walks clocked_in -> on_break -> clocked_in
// -> clocked_out; clocked_out is terminal for the day.
const (
	StatusClockedIn  = "clocked_in"
	StatusOnBreak    = "on_break"
	StatusClockedOut = "clocked_out"
)

// BreakTypeRegular is the default tag when the client sends none.
const BreakTypeRegular = "regular"

// Record is one attendance row per (employee, calendar day).
// TimeOut == nil means the record is still open.
type Record struct {
	ID                string
	EmployeeID        string
	Date              time.Time
	TimeIn            time.Time
	TimeOut           *time.Time
	Status            string
	TotalBreakMinutes int
	TotalWorkMinutes  *int
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Open reports whether the record has no clock-out yet.
func (r Record) Open() bool {
	return r.TimeOut == nil
}

// BreakInterval is a child of exactly one Record. BreakEnd == nil means the
// break is still running; at most one such row may exist per record.
type BreakInterval struct {
	ID           string
	AttendanceID string
	EmployeeID   string
	BreakStart   time.Time
	BreakEnd     *time.Time
	BreakMinutes *int
	BreakType    string
	Notes        *string
	CreatedAt    time.Time
}
