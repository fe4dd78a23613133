package attendance

import "errors"

// Attendance domain errors
var (
	// Punch state-machine violations. These are expected user-facing
	// conditions, returned as values and rendered as a message.
	ErrAlreadyClockedIn = errors.New("you already have an open attendance record")
	ErrNotClockedIn     = errors.New("you have not clocked in yet")
	ErrAlreadyOnBreak   = errors.New("you already have a break in progress")
	ErrNoActiveBreak    = errors.New("you have no break in progress")
	ErrBreakInProgress  = errors.New("end your break before clocking out")

	// General errors
	ErrUnauthorized = errors.New("unauthorized to access this attendance record")
)
