package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftpulse/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/clock"
	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/database"
)

// RoleManager may list and summarize other employees' records.
const RoleManager = "manager"

type ServiceImpl struct {
	tx    database.TxManager
	clock clock.Clock
	attendance.Repository
}

func NewAttendanceService(tx database.TxManager, repo attendance.Repository, clk clock.Clock) attendance.Service {
	return &ServiceImpl{
		tx:         tx,
		clock:      clk,
		Repository: repo,
	}
}

// employeeIDFromContext reads the caller's identity from the JWT claims.
func employeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}
	return employeeID, nil
}

func roleFromContext(ctx context.Context) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}

// ClockIn implements attendance.Service.
func (s *ServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.clock.Now()

	record := attendance.Record{
		EmployeeID: employeeID,
		Date:       dayOf(now),
		TimeIn:     now,
		Status:     attendance.StatusClockedIn,
		Notes:      req.Notes,
	}

	// The partial unique index on open records turns a concurrent double
	// clock-in into ErrAlreadyClockedIn at the repository.
	created, err := s.Repository.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyClockedIn) {
			return attendance.RecordResponse{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return toRecordResponse(created, nil), nil
}

// BreakStart implements attendance.Service.
func (s *ServiceImpl) BreakStart(ctx context.Context, req attendance.BreakStartRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	record, err := s.Repository.GetOpenRecord(ctx, employeeID)
	if err != nil {
		if errors.Is(err, attendance.ErrNotClockedIn) {
			return attendance.RecordResponse{}, attendance.ErrNotClockedIn
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get open record: %w", err)
	}

	// Breaks only open while the record is actively clocked in.
	if record.Status == attendance.StatusOnBreak {
		return attendance.RecordResponse{}, attendance.ErrAlreadyOnBreak
	}

	breakType := attendance.BreakTypeRegular
	if req.BreakType != nil {
		breakType = *req.BreakType
	}

	now := s.clock.Now()
	brk := attendance.BreakInterval{
		AttendanceID: record.ID,
		EmployeeID:   employeeID,
		BreakStart:   now,
		BreakType:    breakType,
		Notes:        req.Notes,
	}

	var created attendance.BreakInterval
	var updated attendance.Record
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var txErr error
		created, txErr = s.Repository.CreateBreak(ctx, brk)
		if txErr != nil {
			return txErr
		}

		updated, txErr = s.Repository.MarkOnBreak(ctx, record.ID)
		return txErr
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyOnBreak) {
			return attendance.RecordResponse{}, attendance.ErrAlreadyOnBreak
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to start break: %w", err)
	}

	return toRecordResponse(updated, &created), nil
}

// BreakEnd implements attendance.Service.
func (s *ServiceImpl) BreakEnd(ctx context.Context) (attendance.RecordResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	record, err := s.Repository.GetOpenRecord(ctx, employeeID)
	if err != nil {
		if errors.Is(err, attendance.ErrNotClockedIn) {
			return attendance.RecordResponse{}, attendance.ErrNoActiveBreak
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get open record: %w", err)
	}

	brk, err := s.Repository.GetOpenBreak(ctx, record.ID)
	if err != nil {
		if errors.Is(err, attendance.ErrNoActiveBreak) {
			return attendance.RecordResponse{}, attendance.ErrNoActiveBreak
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get open break: %w", err)
	}

	now := s.clock.Now()
	minutes := DurationMinutes(brk.BreakStart, now)

	brk.BreakEnd = &now
	brk.BreakMinutes = &minutes

	// The delta accumulate means the record snapshot read above can go stale
	// without corrupting the running break total.
	var updated attendance.Record
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if txErr := s.Repository.CloseBreak(ctx, brk); txErr != nil {
			return txErr
		}

		var txErr error
		updated, txErr = s.Repository.AccumulateBreak(ctx, record.ID, minutes)
		return txErr
	})
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to end break: %w", err)
	}

	return toRecordResponse(updated, nil), nil
}

// ClockOut implements attendance.Service.
func (s *ServiceImpl) ClockOut(ctx context.Context) (attendance.RecordResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	record, err := s.Repository.GetOpenRecord(ctx, employeeID)
	if err != nil {
		if errors.Is(err, attendance.ErrNotClockedIn) {
			return attendance.RecordResponse{}, attendance.ErrNotClockedIn
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get open record: %w", err)
	}

	// Close is a single guarded statement: it refuses while a break is open
	// (even one started after the read above) and derives the work minutes
	// from the row's own break total.
	closed, err := s.Repository.Close(ctx, record.ID, s.clock.Now())
	if err != nil {
		if errors.Is(err, attendance.ErrBreakInProgress) || errors.Is(err, attendance.ErrNotClockedIn) {
			return attendance.RecordResponse{}, err
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to close attendance record: %w", err)
	}

	return toRecordResponse(closed, nil), nil
}

// GetTodayStatus implements attendance.Service.
func (s *ServiceImpl) GetTodayStatus(ctx context.Context) (attendance.TodayStatusResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.TodayStatusResponse{}, err
	}

	record, err := s.Repository.GetByEmployeeAndDate(ctx, employeeID, dayOf(s.clock.Now()))
	if err != nil {
		return attendance.TodayStatusResponse{}, fmt.Errorf("failed to get today's record: %w", err)
	}
	if record == nil {
		return attendance.TodayStatusResponse{Breaks: []attendance.BreakResponse{}}, nil
	}

	breaks, err := s.Repository.ListBreaks(ctx, record.ID)
	if err != nil {
		return attendance.TodayStatusResponse{}, fmt.Errorf("failed to list breaks: %w", err)
	}

	var activeBreak *attendance.BreakResponse
	breakResponses := make([]attendance.BreakResponse, 0, len(breaks))
	for _, brk := range breaks {
		resp := toBreakResponse(brk)
		if brk.BreakEnd == nil {
			activeBreak = &resp
		}
		breakResponses = append(breakResponses, resp)
	}

	recordResponse := toRecordResponse(*record, nil)
	recordResponse.ActiveBreak = activeBreak

	return attendance.TodayStatusResponse{
		Attendance:  &recordResponse,
		ActiveBreak: activeBreak,
		Breaks:      breakResponses,
	}, nil
}

// ListAttendance implements attendance.Service.
func (s *ServiceImpl) ListAttendance(ctx context.Context, filter attendance.ListFilter) (attendance.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListResponse{}, err
	}

	if err := s.scopeFilter(ctx, &filter); err != nil {
		return attendance.ListResponse{}, err
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}

	records, total, err := s.Repository.List(ctx, filter)
	if err != nil {
		return attendance.ListResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toRecordResponse(record, nil))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return attendance.ListResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}, nil
}

// GetSummary implements attendance.Service.
func (s *ServiceImpl) GetSummary(ctx context.Context, filter attendance.ListFilter) (attendance.Summary, error) {
	if err := filter.Validate(); err != nil {
		return attendance.Summary{}, err
	}

	if err := s.scopeFilter(ctx, &filter); err != nil {
		return attendance.Summary{}, err
	}

	records, err := s.Repository.ListAll(ctx, filter)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to list attendances for summary: %w", err)
	}

	var summary attendance.Summary
	present := make(map[string]struct{})
	for _, record := range records {
		if record.TotalWorkMinutes != nil {
			summary.TotalWorkMinutes += *record.TotalWorkMinutes
			summary.TotalOvertimeMinutes += OvertimeMinutes(*record.TotalWorkMinutes)
		}
		summary.TotalNightDiffHours += NightDiffHours(record.TimeIn, record.TimeOut)
		present[record.EmployeeID+"|"+record.Date.Format("2006-01-02")] = struct{}{}
	}
	summary.PresentCount = len(present)
	summary.TotalWorkHours = float64(summary.TotalWorkMinutes) / 60.0

	return summary, nil
}

// scopeFilter pins non-managers to their own records.
func (s *ServiceImpl) scopeFilter(ctx context.Context, filter *attendance.ListFilter) error {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return err
	}

	if roleFromContext(ctx) != RoleManager {
		if filter.EmployeeID != nil && *filter.EmployeeID != employeeID {
			return attendance.ErrUnauthorized
		}
		filter.EmployeeID = &employeeID
	}
	return nil
}

// dayOf truncates an instant to its calendar day, keeping the location.
func dayOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func timeToString(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := timeToString(*t)
	return &formatted
}

// toRecordResponse attaches the derived metrics the reporting views consume.
func toRecordResponse(record attendance.Record, activeBreak *attendance.BreakInterval) attendance.RecordResponse {
	workMinutes := 0
	if record.TotalWorkMinutes != nil {
		workMinutes = *record.TotalWorkMinutes
	}

	resp := attendance.RecordResponse{
		ID:                record.ID,
		EmployeeID:        record.EmployeeID,
		Date:              record.Date.Format("2006-01-02"),
		TimeIn:            timeToString(record.TimeIn),
		TimeOut:           timePtrToString(record.TimeOut),
		Status:            record.Status,
		TotalBreakMinutes: record.TotalBreakMinutes,
		TotalWorkMinutes:  record.TotalWorkMinutes,
		OvertimeMinutes:   OvertimeMinutes(workMinutes),
		OvertimeHours:     OvertimeHours(workMinutes),
		NightDiffHours:    NightDiffHours(record.TimeIn, record.TimeOut),
		Notes:             record.Notes,
	}

	if activeBreak != nil {
		brkResp := toBreakResponse(*activeBreak)
		resp.ActiveBreak = &brkResp
	}

	return resp
}

func toBreakResponse(brk attendance.BreakInterval) attendance.BreakResponse {
	return attendance.BreakResponse{
		ID:           brk.ID,
		AttendanceID: brk.AttendanceID,
		BreakStart:   timeToString(brk.BreakStart),
		BreakEnd:     timePtrToString(brk.BreakEnd),
		BreakMinutes: brk.BreakMinutes,
		BreakType:    brk.BreakType,
		Notes:        brk.Notes,
	}
}
