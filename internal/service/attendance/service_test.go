package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/shiftpulse/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== TEST DOUBLES =====

// memoryRepository enforces the same uniqueness rules the database indexes
// provide (one open record per employee, one record per employee per day, one
// open break per record) and keeps each mutation atomic under its mutex, so
// the state machine can be exercised without a database.
type memoryRepository struct {
	mu      sync.Mutex
	records map[string]attendance.Record
	breaks  map[string]attendance.BreakInterval
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		records: make(map[string]attendance.Record),
		breaks:  make(map[string]attendance.BreakInterval),
	}
}

func (m *memoryRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.records {
		if existing.EmployeeID != record.EmployeeID {
			continue
		}
		if existing.TimeOut == nil || existing.Date.Equal(record.Date) {
			return attendance.Record{}, attendance.ErrAlreadyClockedIn
		}
	}
	record.ID = uuid.NewString()
	m.records[record.ID] = record
	return record, nil
}

func (m *memoryRepository) GetOpenRecord(ctx context.Context, employeeID string) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, record := range m.records {
		if record.EmployeeID == employeeID && record.TimeOut == nil {
			return record, nil
		}
	}
	return attendance.Record{}, attendance.ErrNotClockedIn
}

func (m *memoryRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, record := range m.records {
		if record.EmployeeID == employeeID && record.Date.Equal(date) {
			r := record
			return &r, nil
		}
	}
	return nil, nil
}

func (m *memoryRepository) MarkOnBreak(ctx context.Context, attendanceID string) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[attendanceID]
	if !ok || rec.TimeOut != nil {
		return attendance.Record{}, attendance.ErrNotClockedIn
	}
	rec.Status = attendance.StatusOnBreak
	m.records[attendanceID] = rec
	return rec, nil
}

func (m *memoryRepository) AccumulateBreak(ctx context.Context, attendanceID string, minutes int) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[attendanceID]
	if !ok || rec.TimeOut != nil {
		return attendance.Record{}, attendance.ErrNotClockedIn
	}
	rec.TotalBreakMinutes += minutes
	rec.Status = attendance.StatusClockedIn
	m.records[attendanceID] = rec
	return rec, nil
}

func (m *memoryRepository) Close(ctx context.Context, attendanceID string, timeOut time.Time) (attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[attendanceID]
	if !ok || rec.TimeOut != nil {
		return attendance.Record{}, attendance.ErrNotClockedIn
	}
	for _, brk := range m.breaks {
		if brk.AttendanceID == attendanceID && brk.BreakEnd == nil {
			return attendance.Record{}, attendance.ErrBreakInProgress
		}
	}
	work := WorkMinutes(rec.TimeIn, timeOut, rec.TotalBreakMinutes)
	rec.TimeOut = &timeOut
	rec.Status = attendance.StatusClockedOut
	rec.TotalWorkMinutes = &work
	m.records[attendanceID] = rec
	return rec, nil
}

func (m *memoryRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Record, int64, error) {
	records, err := m.ListAll(ctx, filter)
	return records, int64(len(records)), err
}

func (m *memoryRepository) ListAll(ctx context.Context, filter attendance.ListFilter) ([]attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []attendance.Record
	for _, record := range m.records {
		if filter.EmployeeID != nil && record.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func (m *memoryRepository) CreateBreak(ctx context.Context, brk attendance.BreakInterval) (attendance.BreakInterval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.breaks {
		if existing.AttendanceID == brk.AttendanceID && existing.BreakEnd == nil {
			return attendance.BreakInterval{}, attendance.ErrAlreadyOnBreak
		}
	}
	brk.ID = uuid.NewString()
	m.breaks[brk.ID] = brk
	return brk, nil
}

func (m *memoryRepository) GetOpenBreak(ctx context.Context, attendanceID string) (attendance.BreakInterval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, brk := range m.breaks {
		if brk.AttendanceID == attendanceID && brk.BreakEnd == nil {
			return brk, nil
		}
	}
	return attendance.BreakInterval{}, attendance.ErrNoActiveBreak
}

func (m *memoryRepository) CloseBreak(ctx context.Context, brk attendance.BreakInterval) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.breaks[brk.ID]; !ok {
		return attendance.ErrNoActiveBreak
	}
	m.breaks[brk.ID] = brk
	return nil
}

func (m *memoryRepository) ListBreaks(ctx context.Context, attendanceID string) ([]attendance.BreakInterval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]attendance.BreakInterval, 0)
	for _, brk := range m.breaks {
		if brk.AttendanceID == attendanceID {
			out = append(out, brk)
		}
	}
	return out, nil
}

// passthroughTx satisfies database.TxManager without a pool.
type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var testTokenAuth = jwtauth.New("HS256", []byte("test-secret"), nil)

func contextFor(t *testing.T, employeeID string, role string) context.Context {
	t.Helper()
	token, _, err := testTokenAuth.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"role":        role,
		"type":        "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(start time.Time) (attendance.Service, *memoryRepository, *clock.Fixed) {
	repo := newMemoryRepository()
	clk := clock.NewFixed(start)
	svc := NewAttendanceService(passthroughTx{}, repo, clk)
	return svc, repo, clk
}

// ===== STATE MACHINE TESTS =====

func TestClockIn_CreatesOpenRecord(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(at(4, 9, 0))
	ctx := contextFor(t, "emp-1", "staff")

	resp, err := svc.ClockIn(ctx, attendance.ClockInRequest{})

	require.NoError(t, err)
	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, attendance.StatusClockedIn, resp.Status)
	assert.Equal(t, "2024-03-04", resp.Date)
	assert.Nil(t, resp.TimeOut)
}

func TestClockIn_TwiceFails(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(at(4, 9, 0))
	ctx := contextFor(t, "emp-1", "staff")

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{})
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, attendance.ClockInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestClockIn_ConcurrentPunchesExactlyOneSucceeds(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(at(4, 9, 0))
	ctx := contextFor(t, "emp-1", "staff")

	const n = 16
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.ClockIn(ctx, attendance.ClockInRequest{})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestBreakStart_RequiresOpenRecord(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(at(4, 9, 0))
	ctx := contextFor(t, "emp-1", "staff")

	_, err := svc.BreakStart(ctx, attendance.BreakStartRequest{})
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestBreakStart_TwiceFails(t *testing.T) {
	t.Parallel()
	svc, _, clk := newTestService(at(4, 9, 0))
	ctx := contextFor(t, "emp-1", "staff")

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{})
	require.NoError(t, err)

	clk.Advance(3 * time.Hour)
	resp, err := svc.BreakStart(ctx, attendance.BreakStartRequest{})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOnBreak, resp.Status)
	require.NotNil(t, resp.ActiveBreak)
	assert.Equal(t, attendance.BreakTypeRegular, resp.ActiveBreak.BreakType)

	_, err = svc.BreakStart(ctx, attendance.BreakStartRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyOnBreak)
}

func TestBreakEnd_AccumulatesMinutes(t *testing.T) {
	t.Parallel()
	svc, _, clk := newTestService(at(4, 9, 0))
	ctx := contextFor(t, "emp-1", "staff")

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{})
	require.NoError(t, err)

	clk.Advance(3 * time.Hour)
	_, err = svc.BreakStart(ctx, attendance.BreakStartRequest{})
	require.NoError(t, err)

	clk.Advance(45 * time.Minute)
	resp, err := svc.BreakEnd(ctx)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusClockedIn, resp.Status)
	assert.Equal(t, 45, resp.TotalBreakMinutes)
}

func TestBreakEnd_WithoutBreakFails(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestService(at(4, 9, 0))
	ctx := contextFor(t, "emp-1", "staff")

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{})
	require.NoError(t, err)

	_, err = svc.BreakEnd(ctx)
	assert.ErrorIs(t, err, attendance.ErrNoActiveBreak)
}

func TestClockOut_WhileOnBreakFails(t *testing.T) {
	t.Parallel()
	svc, _, clk := newTestService(at(4, 9, 0))
	ctx := contextFor(t, "emp-1", "staff")

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{})
	require.NoError(t, err)

	clk.Advance(2 * time.Hour)
	_, err = svc.BreakStart(ctx, attendance.BreakStartRequest{})
	require.NoError(t, err)

	_, err = svc.ClockOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrBreakInProgress)
}

func TestClockOut_ComputesWorkMinutesNetOfBreaks(t *testing.T) {
	t.Parallel()
	svc, _, clk := newTestService(at(4, 9, 0))
	ctx := contextFor(t, "emp-1", "staff")

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{})
	require.NoError(t, err)

	clk.Advance(3 * time.Hour)
	_, err = svc.BreakStart(ctx, attendance.BreakStartRequest{})
	require.NoError(t, err)

	clk.Advance(time.Hour)
	_, err = svc.BreakEnd(ctx)
	require.NoError(t, err)

	clk.Advance(5 * time.Hour) // 09:00 -> 18:00 with a 60 minute break
	resp, err := svc.ClockOut(ctx)
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusClockedOut, resp.Status)
	require.NotNil(t, resp.TotalWorkMinutes)
	assert.Equal(t, 480, *resp.TotalWorkMinutes)
	assert.Equal(t, 0, resp.OvertimeMinutes)

	// A closed day is terminal; further punches are a fresh NotClockedIn.
	_, err = svc.ClockOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestClockIn_AfterSameDayClockOutFails(t *testing.T) {
	t.Parallel()
	svc, repo, clk := newTestService(at(4, 9, 0))
	ctx := contextFor(t, "emp-1", "staff")

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{})
	require.NoError(t, err)

	clk.Advance(4 * time.Hour)
	_, err = svc.ClockOut(ctx)
	require.NoError(t, err)

	// 14:00 the same day: clocked_out is terminal, no second record.
	clk.Advance(time.Hour)
	_, err = svc.ClockIn(ctx, attendance.ClockInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	emp := "emp-1"
	records, err := repo.ListAll(context.Background(), attendance.ListFilter{EmployeeID: &emp})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestClockIn_NextDaySucceedsAfterClockOut(t *testing.T) {
	t.Parallel()
	svc, _, clk := newTestService(at(4, 9, 0))
	ctx := contextFor(t, "emp-1", "staff")

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{})
	require.NoError(t, err)
	clk.Advance(8 * time.Hour)
	_, err = svc.ClockOut(ctx)
	require.NoError(t, err)

	clk.Advance(16 * time.Hour) // 09:00 the next day
	resp, err := svc.ClockIn(ctx, attendance.ClockInRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", resp.Date)
}

func TestClockOut_RefusedWhileBreakOpenThenSucceeds(t *testing.T) {
	t.Parallel()
	svc, _, clk := newTestService(at(4, 9, 0))
	ctx := contextFor(t, "emp-1", "staff")

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{})
	require.NoError(t, err)

	clk.Advance(3 * time.Hour)
	_, err = svc.BreakStart(ctx, attendance.BreakStartRequest{})
	require.NoError(t, err)

	// The refused close must leave both the record and the break untouched.
	_, err = svc.ClockOut(ctx)
	require.ErrorIs(t, err, attendance.ErrBreakInProgress)

	status, err := svc.GetTodayStatus(ctx)
	require.NoError(t, err)
	require.NotNil(t, status.Attendance)
	assert.Equal(t, attendance.StatusOnBreak, status.Attendance.Status)
	require.NotNil(t, status.ActiveBreak)

	clk.Advance(30 * time.Minute)
	_, err = svc.BreakEnd(ctx)
	require.NoError(t, err)

	clk.Advance(time.Hour + 30*time.Minute) // 09:00 -> 14:00, 30 min break
	resp, err := svc.ClockOut(ctx)
	require.NoError(t, err)
	require.NotNil(t, resp.TotalWorkMinutes)
	assert.Equal(t, 270, *resp.TotalWorkMinutes)
}

func TestClockOut_OvertimeAndNightDiffDerived(t *testing.T) {
	t.Parallel()
	svc, _, clk := newTestService(at(4, 22, 0))
	ctx := contextFor(t, "emp-1", "staff")

	_, err := svc.ClockIn(ctx, attendance.ClockInRequest{})
	require.NoError(t, err)

	clk.Advance(8*time.Hour + 30*time.Minute) // 22:00 -> 06:30 next day
	resp, err := svc.ClockOut(ctx)
	require.NoError(t, err)

	require.NotNil(t, resp.TotalWorkMinutes)
	assert.Equal(t, 510, *resp.TotalWorkMinutes)
	assert.Equal(t, 30, resp.OvertimeMinutes)
	assert.InDelta(t, 0.5, resp.OvertimeHours, 0.0001)
	// Buckets 22..05 qualify; the 06:00 bucket is outside the band.
	assert.Equal(t, 8, resp.NightDiffHours)
}

func TestGetTodayStatus(t *testing.T) {
	t.Parallel()
	svc, _, clk := newTestService(at(4, 9, 0))
	ctx := contextFor(t, "emp-1", "staff")

	status, err := svc.GetTodayStatus(ctx)
	require.NoError(t, err)
	assert.Nil(t, status.Attendance)
	assert.Nil(t, status.ActiveBreak)
	assert.Empty(t, status.Breaks)

	_, err = svc.ClockIn(ctx, attendance.ClockInRequest{})
	require.NoError(t, err)
	clk.Advance(time.Hour)
	_, err = svc.BreakStart(ctx, attendance.BreakStartRequest{})
	require.NoError(t, err)

	status, err = svc.GetTodayStatus(ctx)
	require.NoError(t, err)
	require.NotNil(t, status.Attendance)
	assert.Equal(t, attendance.StatusOnBreak, status.Attendance.Status)
	require.NotNil(t, status.ActiveBreak)
	assert.Len(t, status.Breaks, 1)
}

func TestListAttendance_NonManagerScopedToSelf(t *testing.T) {
	t.Parallel()
	svc, _, clk := newTestService(at(4, 9, 0))

	for _, emp := range []string{"emp-1", "emp-2"} {
		ctx := contextFor(t, emp, "staff")
		_, err := svc.ClockIn(ctx, attendance.ClockInRequest{})
		require.NoError(t, err)
		clk.Advance(8 * time.Hour)
		_, err = svc.ClockOut(ctx)
		require.NoError(t, err)
		clk.Advance(-8 * time.Hour)
	}

	ctx := contextFor(t, "emp-1", "staff")
	list, err := svc.ListAttendance(ctx, attendance.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list.Attendances, 1)
	assert.Equal(t, "emp-1", list.Attendances[0].EmployeeID)

	other := "emp-2"
	_, err = svc.ListAttendance(ctx, attendance.ListFilter{EmployeeID: &other})
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)

	mgrCtx := contextFor(t, "mgr-1", RoleManager)
	list, err = svc.ListAttendance(mgrCtx, attendance.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, list.Attendances, 2)
}

func TestGetSummary_AggregatesFilteredRecords(t *testing.T) {
	t.Parallel()
	svc, _, clk := newTestService(at(4, 9, 0))

	// emp-1 works a 9 hour day, emp-2 a graveyard shift.
	ctx1 := contextFor(t, "emp-1", "staff")
	_, err := svc.ClockIn(ctx1, attendance.ClockInRequest{})
	require.NoError(t, err)
	clk.Advance(9 * time.Hour)
	_, err = svc.ClockOut(ctx1)
	require.NoError(t, err)

	clk.Advance(4 * time.Hour) // 22:00
	ctx2 := contextFor(t, "emp-2", "staff")
	_, err = svc.ClockIn(ctx2, attendance.ClockInRequest{})
	require.NoError(t, err)
	clk.Advance(8 * time.Hour)
	_, err = svc.ClockOut(ctx2)
	require.NoError(t, err)

	mgrCtx := contextFor(t, "mgr-1", RoleManager)
	summary, err := svc.GetSummary(mgrCtx, attendance.ListFilter{})
	require.NoError(t, err)

	assert.Equal(t, 540+480, summary.TotalWorkMinutes)
	assert.Equal(t, 60, summary.TotalOvertimeMinutes)
	assert.Equal(t, 8, summary.TotalNightDiffHours)
	assert.Equal(t, 2, summary.PresentCount)
}
