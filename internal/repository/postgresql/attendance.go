package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shiftpulse/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/database"
)

// Unique indexes backing "one open record per employee" and "one record per
// employee per calendar day" (see migrations/0001_init.sql). Both collapse a
// duplicate clock-in to the same typed error: one guards the racing double
// punch, the other the re-punch after a same-day clock-out.
const (
	idxOneOpenRecordPerEmployee = "attendance_records_one_open_per_employee"
	idxOneRecordPerEmployeeDay  = "attendance_records_employee_date_key"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const recordColumns = `
	id, employee_id, date, time_in, time_out, status,
	total_break_minutes, total_work_minutes, notes,
	created_at, updated_at
`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.TimeIn, &rec.TimeOut, &rec.Status,
		&rec.TotalBreakMinutes, &rec.TotalWorkMinutes, &rec.Notes,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Create implements attendance.Repository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := database.GetQuerier(ctx, a.db)

	record.ID = uuid.NewString()

	query := `
		INSERT INTO attendance_records (
			id, employee_id, date, time_in, status, total_break_minutes, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.ID,
		record.EmployeeID,
		record.Date,
		record.TimeIn,
		record.Status,
		record.TotalBreakMinutes,
		record.Notes,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, idxOneOpenRecordPerEmployee) || isUniqueViolation(err, idxOneRecordPerEmployeeDay) {
			return attendance.Record{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// GetOpenRecord implements attendance.Repository.
func (a *attendanceRepository) GetOpenRecord(ctx context.Context, employeeID string) (attendance.Record, error) {
	q := database.GetQuerier(ctx, a.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND time_out IS NULL
		ORDER BY time_in DESC
		LIMIT 1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrNotClockedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to get open record: %w", err)
	}

	return rec, nil
}

// GetByEmployeeAndDate implements attendance.Repository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	q := database.GetQuerier(ctx, a.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND date = $2
		LIMIT 1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // no punch that day
		}
		return nil, fmt.Errorf("failed to get record by employee and date: %w", err)
	}

	return &rec, nil
}

// MarkOnBreak implements attendance.Repository.
func (a *attendanceRepository) MarkOnBreak(ctx context.Context, attendanceID string) (attendance.Record, error) {
	q := database.GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET status = $1,
		    updated_at = NOW()
		WHERE id = $2
		  AND time_out IS NULL
		RETURNING ` + recordColumns + `
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, attendance.StatusOnBreak, attendanceID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrNotClockedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to mark record on break: %w", err)
	}

	return rec, nil
}

// AccumulateBreak implements attendance.Repository. The delta update keeps the
// running total correct even if the record row changed since it was read.
func (a *attendanceRepository) AccumulateBreak(ctx context.Context, attendanceID string, minutes int) (attendance.Record, error) {
	q := database.GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET total_break_minutes = total_break_minutes + $1,
		    status = $2,
		    updated_at = NOW()
		WHERE id = $3
		  AND time_out IS NULL
		RETURNING ` + recordColumns + `
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, minutes, attendance.StatusClockedIn, attendanceID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrNotClockedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to accumulate break minutes: %w", err)
	}

	return rec, nil
}

// Close implements attendance.Repository. The NOT EXISTS guard and the
// in-statement work-minutes derivation make the transition a single atomic
// check-then-write: a break opened between the service's read and this
// statement blocks the close, and the break total read here can never be
// stale.
func (a *attendanceRepository) Close(ctx context.Context, attendanceID string, timeOut time.Time) (attendance.Record, error) {
	q := database.GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET time_out = $1,
		    status = $2,
		    total_work_minutes = GREATEST(
		        0,
		        ROUND(EXTRACT(EPOCH FROM ($1::timestamptz - time_in)) / 60)::int - total_break_minutes
		    ),
		    updated_at = NOW()
		WHERE id = $3
		  AND time_out IS NULL
		  AND NOT EXISTS (
		      SELECT 1 FROM break_intervals
		      WHERE attendance_id = $3 AND break_end IS NULL
		  )
		RETURNING ` + recordColumns + `
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, timeOut, attendance.StatusClockedOut, attendanceID))
	if err != nil {
		if err == pgx.ErrNoRows {
			if _, berr := a.GetOpenBreak(ctx, attendanceID); berr == nil {
				return attendance.Record{}, attendance.ErrBreakInProgress
			}
			return attendance.Record{}, attendance.ErrNotClockedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to close attendance record: %w", err)
	}

	return rec, nil
}

// buildListWhere assembles the shared filter clause for List and ListAll.
func buildListWhere(filter attendance.ListFilter) (string, []interface{}) {
	where := []string{"1=1"}
	args := make([]interface{}, 0)
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		where = append(where, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		where = append(where, fmt.Sprintf("date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		where = append(where, fmt.Sprintf("date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	return strings.Join(where, " AND "), args
}

func listOrderBy(filter attendance.ListFilter) string {
	orderByField := "date"
	switch filter.SortBy {
	case "time_in":
		orderByField = "time_in"
	case "time_out":
		orderByField = "time_out"
	case "status":
		orderByField = "status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}
	return orderByField + " " + sortOrder
}

// List implements attendance.Repository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	q := database.GetQuerier(ctx, a.db)

	baseWhere, args := buildListWhere(filter)

	countQuery := "SELECT COUNT(*) FROM attendance_records WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit

	argIdx := len(args) + 1
	selectQuery := fmt.Sprintf(`
		SELECT `+recordColumns+`
		FROM attendance_records
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, listOrderBy(filter), argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, nil
}

// ListAll implements attendance.Repository.
func (a *attendanceRepository) ListAll(ctx context.Context, filter attendance.ListFilter) ([]attendance.Record, error) {
	q := database.GetQuerier(ctx, a.db)

	baseWhere, args := buildListWhere(filter)

	selectQuery := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE ` + baseWhere + `
		ORDER BY date ASC, time_in ASC
	`

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}
