package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records and their breaks.
// The "one open record per employee", "one record per employee per day", and
// "one open break per record" invariants are enforced by unique indexes;
// Create and CreateBreak surface violations as ErrAlreadyClockedIn /
// ErrAlreadyOnBreak. Record mutations are single guarded statements so each
// transition is one atomic check-then-write.
type Repository interface {
	// Create inserts a new open record for the employee.
	Create(ctx context.Context, record Record) (Record, error)

	// GetOpenRecord returns the employee's open record (any day), or
	// ErrNotClockedIn when none exists.
	GetOpenRecord(ctx context.Context, employeeID string) (Record, error)

	// GetByEmployeeAndDate returns the record for a calendar day, nil when
	// the employee has not punched that day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	// MarkOnBreak flips an open record to on_break status.
	MarkOnBreak(ctx context.Context, attendanceID string) (Record, error)

	// AccumulateBreak adds a finished break's minutes to an open record's
	// running total and flips it back to clocked_in.
	AccumulateBreak(ctx context.Context, attendanceID string, minutes int) (Record, error)

	// Close stamps time_out and derives total_work_minutes in one guarded
	// statement. It fails with ErrBreakInProgress while an open break exists
	// and ErrNotClockedIn when the record is already closed.
	Close(ctx context.Context, attendanceID string, timeOut time.Time) (Record, error)

	// List retrieves records with filters and pagination.
	List(ctx context.Context, filter ListFilter) ([]Record, int64, error)

	// ListAll retrieves every record matching the filter, unpaginated.
	// Feeds the summary aggregation.
	ListAll(ctx context.Context, filter ListFilter) ([]Record, error)

	// CreateBreak opens a break under the given record.
	CreateBreak(ctx context.Context, brk BreakInterval) (BreakInterval, error)

	// GetOpenBreak returns the open break for a record, or ErrNoActiveBreak.
	GetOpenBreak(ctx context.Context, attendanceID string) (BreakInterval, error)

	// CloseBreak sets break_end and break_minutes on an open break.
	CloseBreak(ctx context.Context, brk BreakInterval) error

	// ListBreaks returns all breaks under a record, oldest first.
	ListBreaks(ctx context.Context, attendanceID string) ([]BreakInterval, error)
}
