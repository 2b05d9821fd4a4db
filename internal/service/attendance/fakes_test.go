package attendance

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
)

type fakeTx struct{ calls int }

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type attendanceKey struct {
	employeeID string
	date       string
}

// fakeAttendanceRepo enforces the (employee_id, date) unique key like the real table.
type fakeAttendanceRepo struct {
	mu      sync.Mutex
	byID    map[string]attendance.Attendance
	byKey   map[attendanceKey]string
	creates int

	// beforeCreate runs before the uniqueness check; tests use it to simulate a concurrent insert
	beforeCreate func()
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		byID:  map[string]attendance.Attendance{},
		byKey: map[attendanceKey]string{},
	}
}

func keyOf(employeeID string, date time.Time) attendanceKey {
	return attendanceKey{employeeID: employeeID, date: date.Format("2006-01-02")}
}

func (f *fakeAttendanceRepo) put(a attendance.Attendance) {
	a.Breaks = nil
	f.byID[a.ID] = a
	f.byKey[keyOf(a.EmployeeID, a.Date)] = a.ID
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time, companyID string) (*attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, ok := f.byKey[keyOf(employeeID, date)]
	if !ok || f.byID[id].CompanyID != companyID {
		return nil, nil
	}
	a := f.byID[id]
	return &a, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string, companyID string) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	a, ok := f.byID[id]
	if !ok || a.CompanyID != companyID {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (f *fakeAttendanceRepo) ListByDate(_ context.Context, companyID string, date time.Time) ([]attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []attendance.Attendance
	for _, a := range f.byID {
		if a.CompanyID == companyID && a.Date.Equal(date) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	all, _ := f.ListInRange(ctx, companyID, filter.EmployeeID, time.Time{}, time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC))

	var matched []attendance.Attendance
	for _, a := range all {
		if filter.Status != nil && string(a.Status) != *filter.Status {
			continue
		}
		matched = append(matched, a)
	}

	start := min(filter.Offset(), len(matched))
	end := min(start+filter.Limit, len(matched))
	return matched[start:end], int64(len(matched)), nil
}

func (f *fakeAttendanceRepo) ListInRange(_ context.Context, companyID string, employeeID *string, from, to time.Time) ([]attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []attendance.Attendance
	for _, a := range f.byID {
		if a.CompanyID != companyID || a.Date.Before(from) || a.Date.After(to) {
			continue
		}
		if employeeID != nil && a.EmployeeID != *employeeID {
			continue
		}
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (f *fakeAttendanceRepo) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	if f.beforeCreate != nil {
		f.beforeCreate()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, taken := f.byKey[keyOf(a.EmployeeID, a.Date)]; taken {
		return attendance.Attendance{}, attendance.ErrAttendanceExists
	}
	f.creates++
	a.CreatedAt, a.UpdatedAt = time.Now(), time.Now()
	f.put(a)
	return a, nil
}

func (f *fakeAttendanceRepo) CreateMany(_ context.Context, as []attendance.Attendance) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var inserted int64
	for _, a := range as {
		if _, taken := f.byKey[keyOf(a.EmployeeID, a.Date)]; taken {
			continue
		}
		f.put(a)
		inserted++
	}
	return inserted, nil
}

func (f *fakeAttendanceRepo) UpdateFields(_ context.Context, id string, companyID string, fields attendance.Fields) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.update(id, companyID, fields, func(attendance.Attendance) bool { return true }, attendance.ErrAttendanceNotFound)
}

func (f *fakeAttendanceRepo) UpdateCheckIn(_ context.Context, id string, companyID string, fields attendance.Fields) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.update(id, companyID, fields, func(a attendance.Attendance) bool { return a.CheckInTime == nil }, attendance.ErrAlreadyCheckedIn)
}

func (f *fakeAttendanceRepo) UpdateCheckOut(_ context.Context, id string, companyID string, fields attendance.Fields) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.update(id, companyID, fields, func(a attendance.Attendance) bool { return a.CheckOutTime == nil }, attendance.ErrAlreadyCheckedOut)
}

// update mirrors a conditional UPDATE: rows failing guard are left untouched and notMatched is returned.
func (f *fakeAttendanceRepo) update(id, companyID string, fields attendance.Fields, guard func(attendance.Attendance) bool, notMatched error) (attendance.Attendance, error) {
	a, ok := f.byID[id]
	if !ok || a.CompanyID != companyID || !guard(a) {
		return attendance.Attendance{}, notMatched
	}

	for k, v := range fields {
		switch k {
		case "date":
			a.Date = v.(time.Time)
		case "check_in_time":
			a.CheckInTime = v.(*string)
		case "check_out_time":
			a.CheckOutTime = v.(*string)
		case "status":
			a.Status = v.(attendance.Status)
		case "present_status":
			a.PresentStatus = v.(attendance.PresentStatus)
		case "working_hours":
			a.WorkingHours = v.(*float64)
		case "total_break_time":
			a.TotalBreakTime = v.(*float64)
		case "location":
			a.Location = v.(*string)
		case "notes":
			a.Notes = v.(*string)
		case "is_remote":
			a.IsRemote = v.(bool)
		case "absence_kind", "absence_id":
			if v != nil {
				panic("fakeAttendanceRepo: only clearing the absence is supported")
			}
			a.Absence = attendance.NoAbsence()
		default:
			panic("fakeAttendanceRepo: unexpected field " + k)
		}
	}
	a.UpdatedAt = time.Now()
	f.put(a)
	return a, nil
}

type fakeBreakRepo struct {
	mu     sync.Mutex
	breaks []attendance.Break
}

func (f *fakeBreakRepo) ListByAttendanceID(_ context.Context, attendanceID string) ([]attendance.Break, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []attendance.Break
	for _, b := range f.breaks {
		if b.AttendanceID == attendanceID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBreakRepo) ListByAttendanceIDs(ctx context.Context, attendanceIDs []string) ([]attendance.Break, error) {
	var result []attendance.Break
	for _, id := range attendanceIDs {
		bs, _ := f.ListByAttendanceID(ctx, id)
		result = append(result, bs...)
	}
	return result, nil
}

func (f *fakeBreakRepo) Create(_ context.Context, b attendance.Break) (attendance.Break, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.breaks = append(f.breaks, b)
	return b, nil
}

func (f *fakeBreakRepo) UpdateFields(_ context.Context, id string, fields attendance.Fields) (attendance.Break, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, b := range f.breaks {
		if b.ID != id {
			continue
		}
		for k, v := range fields {
			switch k {
			case "end_time":
				b.EndTime = v.(*string)
			case "duration_minutes":
				b.DurationMinutes = v.(*int)
			case "is_active":
				b.IsActive = v.(bool)
			default:
				panic("fakeBreakRepo: unexpected field " + k)
			}
		}
		f.breaks[i] = b
		return b, nil
	}
	return attendance.Break{}, attendance.ErrNoActiveBreak
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
	listCalls int
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string, companyID string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id && e.CompanyID == companyID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListTrackingAttendance(_ context.Context, companyID string) ([]employee.Employee, error) {
	f.listCalls++

	var result []employee.Employee
	for _, e := range f.employees {
		if e.CompanyID == companyID && e.TracksAttendance() {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeEmployeeRepo) ListCompanyIDs(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var ids []string
	for _, e := range f.employees {
		if e.TracksAttendance() && !seen[e.CompanyID] {
			seen[e.CompanyID] = true
			ids = append(ids, e.CompanyID)
		}
	}
	return ids, nil
}

type fakeLeaveLookup map[string]string

func (f fakeLeaveLookup) ApprovedVacationsOn(context.Context, string, time.Time) (map[string]string, error) {
	return f, nil
}

// staleAttendanceRepo serves a fixed snapshot to reads, as a request that loaded
// the record before a concurrent write landed would see it.
type staleAttendanceRepo struct {
	*fakeAttendanceRepo
	snapshot attendance.Attendance
}

func (s *staleAttendanceRepo) GetByEmployeeAndDate(context.Context, string, time.Time, string) (*attendance.Attendance, error) {
	a := s.snapshot
	return &a, nil
}
