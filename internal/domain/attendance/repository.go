package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// All methods include companyID to prevent cross-company data access.
type AttendanceRepository interface {
	// GetByEmployeeAndDate returns nil, nil when no record exists
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*Attendance, error)

	GetByID(ctx context.Context, id string, companyID string) (Attendance, error)

	// ListByDate returns every record of the company on date
	ListByDate(ctx context.Context, companyID string, date time.Time) ([]Attendance, error)

	// List returns one page of records matching filter and the total match count
	List(ctx context.Context, filter AttendanceFilter, companyID string) ([]Attendance, int64, error)

	// ListInRange returns every record dated within [from, to], optionally for one employee
	ListInRange(ctx context.Context, companyID string, employeeID *string, from, to time.Time) ([]Attendance, error)

	// Create returns ErrAttendanceExists when (employee, date) is already taken
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// CreateMany skips rows whose (employee, date) already exists and returns the inserted count
	CreateMany(ctx context.Context, attendances []Attendance) (int64, error)

	// UpdateFields writes only the given columns
	UpdateFields(ctx context.Context, id string, companyID string, fields Fields) (Attendance, error)

	// UpdateCheckIn writes fields only while check_in_time is unset, else ErrAlreadyCheckedIn
	UpdateCheckIn(ctx context.Context, id string, companyID string, fields Fields) (Attendance, error)

	// UpdateCheckOut writes fields only while check_out_time is unset, else ErrAlreadyCheckedOut
	UpdateCheckOut(ctx context.Context, id string, companyID string, fields Fields) (Attendance, error)
}

type BreakRepository interface {
	ListByAttendanceID(ctx context.Context, attendanceID string) ([]Break, error)
	ListByAttendanceIDs(ctx context.Context, attendanceIDs []string) ([]Break, error)
	Create(ctx context.Context, b Break) (Break, error)
	UpdateFields(ctx context.Context, id string, fields Fields) (Break, error)
}

// Fields is a partial update keyed by column name.
type Fields map[string]interface{}

// CheckInFields is the partial update applied by CheckIn. It also clears any absence reference.
func (a *Attendance) CheckInFields() Fields {
	return Fields{
		"date":           a.Date,
		"check_in_time":  a.CheckInTime,
		"status":         a.Status,
		"present_status": a.PresentStatus,
		"absence_kind":   nil,
		"absence_id":     nil,
	}
}

// CheckOutFields is the partial update applied by CheckOut.
func (a *Attendance) CheckOutFields() Fields {
	return Fields{
		"check_out_time":   a.CheckOutTime,
		"present_status":   a.PresentStatus,
		"working_hours":    a.WorkingHours,
		"total_break_time": a.TotalBreakTime,
	}
}

// EndFields is the partial update applied by End.
func (b *Break) EndFields() Fields {
	return Fields{
		"end_time":         b.EndTime,
		"duration_minutes": b.DurationMinutes,
		"is_active":        b.IsActive,
	}
}

// EmployeeLeaveLookup resolves which employees are on approved vacation on a date.
type EmployeeLeaveLookup interface {
	// ApprovedVacationsOn maps employee id to the covering vacation id
	ApprovedVacationsOn(ctx context.Context, companyID string, date time.Time) (map[string]string, error)
}
