package attendance

import (
	"context"
)

// Service defines the punch state machine and the reporting reads built on it.
// Employee identity is taken from the request context (JWT claims).
type Service interface {
	// ClockIn opens a new attendance record for today.
	ClockIn(ctx context.Context, req ClockInRequest) (RecordResponse, error)

	// BreakStart opens a break on the caller's open record.
	BreakStart(ctx context.Context, req BreakStartRequest) (RecordResponse, error)

	// BreakEnd closes the running break and accumulates its minutes.
	BreakEnd(ctx context.Context) (RecordResponse, error)

	// ClockOut closes the open record and computes total work minutes.
	ClockOut(ctx context.Context) (RecordResponse, error)

	// GetTodayStatus returns the caller's record, active break, and break list.
	GetTodayStatus(ctx context.Context) (TodayStatusResponse, error)

	// ListAttendance returns records with derived metrics attached per record.
	// Non-managers are restricted to their own records.
	ListAttendance(ctx context.Context, filter ListFilter) (ListResponse, error)

	// GetSummary aggregates the filtered records for dashboard reporting.
	GetSummary(ctx context.Context, filter ListFilter) (Summary, error)
}
