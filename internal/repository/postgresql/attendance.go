package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5/pgtype"
)

type attendanceRow struct {
	ID             string      `db:"id"`
	CompanyID      string      `db:"company_id"`
	EmployeeID     string      `db:"employee_id"`
	Date           time.Time   `db:"date"`
	CheckInTime    pgtype.Time `db:"check_in_time"`
	CheckOutTime   pgtype.Time `db:"check_out_time"`
	Status         string      `db:"status"`
	PresentStatus  string      `db:"present_status"`
	WorkingHours   *float64    `db:"working_hours"`
	TotalBreakTime *float64    `db:"total_break_time"`
	LateMinutes    int         `db:"late_minutes"`
	Notes          *string     `db:"notes"`
	Location       *string     `db:"location"`
	IsRemote       bool        `db:"is_remote"`
	AbsenceKind    *string     `db:"absence_kind"`
	AbsenceID      *string     `db:"absence_id"`
	CreatedAt      time.Time   `db:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at"`
}

var attendanceColumns = []string{
	"id", "company_id", "employee_id", "date", "check_in_time", "check_out_time",
	"status", "present_status", "working_hours", "total_break_time", "late_minutes",
	"notes", "location", "is_remote", "absence_kind", "absence_id", "created_at", "updated_at",
}

func (r attendanceRow) values() []interface{} {
	return []interface{}{
		r.ID, r.CompanyID, r.EmployeeID, r.Date, r.CheckInTime, r.CheckOutTime,
		r.Status, r.PresentStatus, r.WorkingHours, r.TotalBreakTime, r.LateMinutes,
		r.Notes, r.Location, r.IsRemote, r.AbsenceKind, r.AbsenceID, r.CreatedAt, r.UpdatedAt,
	}
}

func newAttendanceRow(a attendance.Attendance) (attendanceRow, error) {
	checkIn, err := pgTime(a.CheckInTime)
	if err != nil {
		return attendanceRow{}, err
	}
	checkOut, err := pgTime(a.CheckOutTime)
	if err != nil {
		return attendanceRow{}, err
	}

	now := time.Now()
	r := attendanceRow{
		ID:             a.ID,
		CompanyID:      a.CompanyID,
		EmployeeID:     a.EmployeeID,
		Date:           a.Date,
		CheckInTime:    checkIn,
		CheckOutTime:   checkOut,
		Status:         string(a.Status),
		PresentStatus:  string(a.PresentStatus),
		WorkingHours:   a.WorkingHours,
		TotalBreakTime: a.TotalBreakTime,
		LateMinutes:    a.LateMinutes,
		Notes:          a.Notes,
		Location:       a.Location,
		IsRemote:       a.IsRemote,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if !a.Absence.IsNone() {
		kind, id := string(a.Absence.Kind()), a.Absence.ID()
		r.AbsenceKind, r.AbsenceID = &kind, &id
	}
	return r, nil
}

func (r attendanceRow) toDomain() attendance.Attendance {
	a := attendance.Attendance{
		ID:             r.ID,
		CompanyID:      r.CompanyID,
		EmployeeID:     r.EmployeeID,
		Date:           r.Date,
		CheckInTime:    fromPgTime(r.CheckInTime),
		CheckOutTime:   fromPgTime(r.CheckOutTime),
		Status:         attendance.Status(r.Status),
		PresentStatus:  attendance.PresentStatus(r.PresentStatus),
		WorkingHours:   r.WorkingHours,
		TotalBreakTime: r.TotalBreakTime,
		LateMinutes:    r.LateMinutes,
		Notes:          r.Notes,
		Location:       r.Location,
		IsRemote:       r.IsRemote,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if r.AbsenceKind != nil {
		a.Absence = attendance.NewAbsenceReference(attendance.AbsenceKind(*r.AbsenceKind), r.AbsenceID)
	}
	return a
}

type attendanceRepository struct {
	table table[attendanceRow]
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{
		table: newTable[attendanceRow](db, "attendances", attendanceColumns...),
	}
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Attendance, error) {
	c := where("employee_id = $%d", employeeID).
		and("date = $%d", date).
		and("company_id = $%d", companyID)

	r, err := a.table.findOne(ctx, c)
	if err != nil || r == nil {
		return nil, err
	}

	att := r.toDomain()
	return &att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	r, err := a.table.findOne(ctx, where("id = $%d", id).and("company_id = $%d", companyID))
	if err != nil {
		return attendance.Attendance{}, err
	}
	if r == nil {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r.toDomain(), nil
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, companyID string, date time.Time) ([]attendance.Attendance, error) {
	rows, err := a.table.findMany(ctx, where("company_id = $%d", companyID).and("date = $%d", date), "")
	if err != nil {
		return nil, err
	}
	return toAttendances(rows), nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	c := where("company_id = $%d", companyID)
	if filter.EmployeeID != nil {
		c = c.and("employee_id = $%d", *filter.EmployeeID)
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		c = c.and("date >= $%d::date", *filter.StartDate)
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		c = c.and("date <= $%d::date", *filter.EndDate)
	}
	if filter.Status != nil {
		c = c.and("status = $%d", *filter.Status)
	}

	total, err := a.table.count(ctx, c)
	if err != nil {
		return nil, 0, err
	}

	suffix := fmt.Sprintf("ORDER BY date DESC, created_at DESC LIMIT %d OFFSET %d", filter.Limit, filter.Offset())
	rows, err := a.table.findMany(ctx, c, suffix)
	if err != nil {
		return nil, 0, err
	}
	return toAttendances(rows), total, nil
}

// ListInRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListInRange(ctx context.Context, companyID string, employeeID *string, from, to time.Time) ([]attendance.Attendance, error) {
	c := where("company_id = $%d", companyID).
		and("date >= $%d", from).
		and("date <= $%d", to)
	if employeeID != nil {
		c = c.and("employee_id = $%d", *employeeID)
	}

	rows, err := a.table.findMany(ctx, c, "ORDER BY date")
	if err != nil {
		return nil, err
	}
	return toAttendances(rows), nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	r, err := newAttendanceRow(newAttendance)
	if err != nil {
		return attendance.Attendance{}, err
	}

	created, err := a.table.insert(ctx, r)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return created.toDomain(), nil
}

// CreateMany implements attendance.AttendanceRepository.
func (a *attendanceRepository) CreateMany(ctx context.Context, attendances []attendance.Attendance) (int64, error) {
	rows := make([]attendanceRow, 0, len(attendances))
	for _, att := range attendances {
		r, err := newAttendanceRow(att)
		if err != nil {
			return 0, err
		}
		rows = append(rows, r)
	}

	return a.table.insertMany(ctx, rows, "ON CONFLICT (employee_id, date) DO NOTHING")
}

// UpdateFields implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateFields(ctx context.Context, id string, companyID string, fields attendance.Fields) (attendance.Attendance, error) {
	c := where("id = $%d", id).and("company_id = $%d", companyID)
	return a.updateWhere(ctx, c, fields, attendance.ErrAttendanceNotFound)
}

// UpdateCheckIn implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateCheckIn(ctx context.Context, id string, companyID string, fields attendance.Fields) (attendance.Attendance, error) {
	c := where("id = $%d", id).and("company_id = $%d", companyID).andNull("check_in_time")
	return a.updateWhere(ctx, c, fields, attendance.ErrAlreadyCheckedIn)
}

// UpdateCheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateCheckOut(ctx context.Context, id string, companyID string, fields attendance.Fields) (attendance.Attendance, error) {
	c := where("id = $%d", id).and("company_id = $%d", companyID).andNull("check_out_time")
	return a.updateWhere(ctx, c, fields, attendance.ErrAlreadyCheckedOut)
}

// updateWhere returns notMatched when no row satisfies c.
func (a *attendanceRepository) updateWhere(ctx context.Context, c conditions, fields attendance.Fields, notMatched error) (attendance.Attendance, error) {
	converted, err := convertTimeFields(fields, "check_in_time", "check_out_time")
	if err != nil {
		return attendance.Attendance{}, err
	}

	r, err := a.table.updateFields(ctx, c, converted)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if r == nil {
		return attendance.Attendance{}, notMatched
	}
	return r.toDomain(), nil
}

func toAttendances(rows []attendanceRow) []attendance.Attendance {
	result := make([]attendance.Attendance, 0, len(rows))
	for _, r := range rows {
		result = append(result, r.toDomain())
	}
	return result
}
