package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shiftpulse/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/database"
)

// Partial unique index backing "one open break per attendance record".
const idxOneOpenBreakPerAttendance = "break_intervals_one_open_per_attendance"

const breakColumns = `
	id, attendance_id, employee_id, break_start, break_end,
	break_minutes, break_type, notes, created_at
`

func scanBreak(row pgx.Row) (attendance.BreakInterval, error) {
	var b attendance.BreakInterval
	err := row.Scan(
		&b.ID, &b.AttendanceID, &b.EmployeeID, &b.BreakStart, &b.BreakEnd,
		&b.BreakMinutes, &b.BreakType, &b.Notes, &b.CreatedAt,
	)
	return b, err
}

// CreateBreak implements attendance.Repository.
func (a *attendanceRepository) CreateBreak(ctx context.Context, brk attendance.BreakInterval) (attendance.BreakInterval, error) {
	q := database.GetQuerier(ctx, a.db)

	brk.ID = uuid.NewString()

	query := `
		INSERT INTO break_intervals (
			id, attendance_id, employee_id, break_start, break_type, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		brk.ID,
		brk.AttendanceID,
		brk.EmployeeID,
		brk.BreakStart,
		brk.BreakType,
		brk.Notes,
	).Scan(&brk.CreatedAt)

	if err != nil {
		if isUniqueViolation(err, idxOneOpenBreakPerAttendance) {
			return attendance.BreakInterval{}, attendance.ErrAlreadyOnBreak
		}
		return attendance.BreakInterval{}, fmt.Errorf("failed to create break interval: %w", err)
	}

	return brk, nil
}

// GetOpenBreak implements attendance.Repository.
func (a *attendanceRepository) GetOpenBreak(ctx context.Context, attendanceID string) (attendance.BreakInterval, error) {
	q := database.GetQuerier(ctx, a.db)

	query := `
		SELECT ` + breakColumns + `
		FROM break_intervals
		WHERE attendance_id = $1
		  AND break_end IS NULL
		LIMIT 1
	`

	brk, err := scanBreak(q.QueryRow(ctx, query, attendanceID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.BreakInterval{}, attendance.ErrNoActiveBreak
		}
		return attendance.BreakInterval{}, fmt.Errorf("failed to get open break: %w", err)
	}

	return brk, nil
}

// CloseBreak implements attendance.Repository.
func (a *attendanceRepository) CloseBreak(ctx context.Context, brk attendance.BreakInterval) error {
	q := database.GetQuerier(ctx, a.db)

	query := `
		UPDATE break_intervals
		SET break_end = $1,
		    break_minutes = $2
		WHERE id = $3
		  AND break_end IS NULL
		RETURNING id
	`

	var closedID string
	err := q.QueryRow(ctx, query, brk.BreakEnd, brk.BreakMinutes, brk.ID).Scan(&closedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrNoActiveBreak
		}
		return fmt.Errorf("failed to close break: %w", err)
	}

	return nil
}

// ListBreaks implements attendance.Repository.
func (a *attendanceRepository) ListBreaks(ctx context.Context, attendanceID string) ([]attendance.BreakInterval, error) {
	q := database.GetQuerier(ctx, a.db)

	query := `
		SELECT ` + breakColumns + `
		FROM break_intervals
		WHERE attendance_id = $1
		ORDER BY break_start ASC
	`

	rows, err := q.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query break intervals: %w", err)
	}
	defer rows.Close()

	var breaks []attendance.BreakInterval
	for rows.Next() {
		brk, err := scanBreak(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan break interval: %w", err)
		}
		breaks = append(breaks, brk)
	}

	return breaks, nil
}
