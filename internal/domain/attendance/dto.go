package attendance

import (
	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/validator"
)

const maxNotesLength = 500

var allowedBreakTypes = []string{BreakTypeRegular, "meal", "rest"}

// ========================================
// PUNCH DTOs
// ========================================

// ClockInRequest carries the optional note attached at clock-in. The employee
// identity comes from the session token, never from the body.
type ClockInRequest struct {
	Notes *string `json:"notes,omitempty"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Notes != nil && len(*r.Notes) > maxNotesLength {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BreakStartRequest struct {
	BreakType *string `json:"break_type,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

func (r *BreakStartRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BreakType != nil && !validator.IsInSlice(*r.BreakType, allowedBreakTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_type",
			Message: "break_type must be one of: regular, meal, rest",
		})
	}

	if r.Notes != nil && len(*r.Notes) > maxNotesLength {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// RESPONSES
// ========================================

type RecordResponse struct {
	ID                string  `json:"id"`
	EmployeeID        string  `json:"employee_id"`
	Date              string  `json:"date"`
	TimeIn            string  `json:"time_in"`
	TimeOut           *string `json:"time_out,omitempty"`
	Status            string  `json:"status"`
	TotalBreakMinutes int     `json:"total_break_minutes"`
	TotalWorkMinutes  *int    `json:"total_work_minutes,omitempty"`
	OvertimeMinutes   int     `json:"overtime_minutes"`
	OvertimeHours     float64 `json:"overtime_hours"`
	NightDiffHours    int     `json:"night_diff_hours"`
	Notes             *string `json:"notes,omitempty"`

	ActiveBreak *BreakResponse `json:"active_break,omitempty"`
}

type BreakResponse struct {
	ID           string  `json:"id"`
	AttendanceID string  `json:"attendance_id"`
	BreakStart   string  `json:"break_start"`
	BreakEnd     *string `json:"break_end,omitempty"`
	BreakMinutes *int    `json:"break_minutes,omitempty"`
	BreakType    string  `json:"break_type"`
	Notes        *string `json:"notes,omitempty"`
}

// TodayStatusResponse is what the punch widget polls: the day's record (if
// any), the running break (if any), and all breaks taken so far.
type TodayStatusResponse struct {
	Attendance  *RecordResponse `json:"attendance"`
	ActiveBreak *BreakResponse  `json:"active_break"`
	Breaks      []BreakResponse `json:"breaks"`
}

// ========================================
// LIST + SUMMARY
// ========================================

type ListFilter struct {
	// EmployeeID is forced to the caller's own ID for non-managers.
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, time_in, time_out, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != nil && validator.IsEmpty(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must not be blank",
		})
	}

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}

	if f.Limit < 0 || f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be between 1 and 100",
		})
	}

	if f.SortBy != "" && !validator.IsInSlice(f.SortBy, []string{"date", "time_in", "time_out", "status"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_by",
			Message: "sort_by must be one of: date, time_in, time_out, status",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Summary aggregates a filtered set of records for the dashboard.
type Summary struct {
	TotalWorkMinutes     int     `json:"total_work_minutes"`
	TotalOvertimeMinutes int     `json:"total_overtime_minutes"`
	TotalNightDiffHours  int     `json:"total_night_diff_hours"`
	PresentCount         int     `json:"present_count"`
	TotalWorkHours       float64 `json:"total_work_hours"`
}

type ListResponse struct {
	TotalCount  int64            `json:"total_count"`
	Page        int              `json:"page"`
	Limit       int              `json:"limit"`
	TotalPages  int              `json:"total_pages"`
	Attendances []RecordResponse `json:"attendances"`
}
