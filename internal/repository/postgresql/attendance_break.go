package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5/pgtype"
)

type breakRow struct {
	ID              string      `db:"id"`
	AttendanceID    string      `db:"attendance_id"`
	EmployeeID      string      `db:"employee_id"`
	CompanyID       string      `db:"company_id"`
	BreakType       string      `db:"break_type"`
	StartTime       pgtype.Time `db:"start_time"`
	EndTime         pgtype.Time `db:"end_time"`
	DurationMinutes *int        `db:"duration_minutes"`
	Notes           *string     `db:"notes"`
	Location        *string     `db:"location"`
	IsActive        bool        `db:"is_active"`
	CreatedAt       time.Time   `db:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at"`
}

var breakColumns = []string{
	"id", "attendance_id", "employee_id", "company_id", "break_type", "start_time", "end_time",
	"duration_minutes", "notes", "location", "is_active", "created_at", "updated_at",
}

func (r breakRow) values() []interface{} {
	return []interface{}{
		r.ID, r.AttendanceID, r.EmployeeID, r.CompanyID, r.BreakType, r.StartTime, r.EndTime,
		r.DurationMinutes, r.Notes, r.Location, r.IsActive, r.CreatedAt, r.UpdatedAt,
	}
}

func (r breakRow) toDomain() attendance.Break {
	start := ""
	if s := fromPgTime(r.StartTime); s != nil {
		start = *s
	}

	return attendance.Break{
		ID:              r.ID,
		AttendanceID:    r.AttendanceID,
		EmployeeID:      r.EmployeeID,
		CompanyID:       r.CompanyID,
		BreakType:       attendance.BreakType(r.BreakType),
		StartTime:       start,
		EndTime:         fromPgTime(r.EndTime),
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
		Location:        r.Location,
		IsActive:        r.IsActive,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

type breakRepository struct {
	table table[breakRow]
}

func NewBreakRepository(db *database.DB) attendance.BreakRepository {
	return &breakRepository{
		table: newTable[breakRow](db, "attendance_breaks", breakColumns...),
	}
}

// ListByAttendanceID implements attendance.BreakRepository.
func (b *breakRepository) ListByAttendanceID(ctx context.Context, attendanceID string) ([]attendance.Break, error) {
	rows, err := b.table.findMany(ctx, where("attendance_id = $%d", attendanceID), "ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	return toBreaks(rows), nil
}

// ListByAttendanceIDs implements attendance.BreakRepository.
func (b *breakRepository) ListByAttendanceIDs(ctx context.Context, attendanceIDs []string) ([]attendance.Break, error) {
	if len(attendanceIDs) == 0 {
		return nil, nil
	}

	rows, err := b.table.findMany(ctx, where("attendance_id = ANY($%d::uuid[])", attendanceIDs), "ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	return toBreaks(rows), nil
}

// Create implements attendance.BreakRepository.
func (b *breakRepository) Create(ctx context.Context, newBreak attendance.Break) (attendance.Break, error) {
	start, err := pgTime(&newBreak.StartTime)
	if err != nil {
		return attendance.Break{}, err
	}
	end, err := pgTime(newBreak.EndTime)
	if err != nil {
		return attendance.Break{}, err
	}

	now := time.Now()
	created, err := b.table.insert(ctx, breakRow{
		ID:              newBreak.ID,
		AttendanceID:    newBreak.AttendanceID,
		EmployeeID:      newBreak.EmployeeID,
		CompanyID:       newBreak.CompanyID,
		BreakType:       string(newBreak.BreakType),
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: newBreak.DurationMinutes,
		Notes:           newBreak.Notes,
		Location:        newBreak.Location,
		IsActive:        newBreak.IsActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		// uq_attendance_breaks_active admits one ongoing break per attendance
		if isUniqueViolation(err) {
			return attendance.Break{}, attendance.ErrAlreadyOnBreak
		}
		return attendance.Break{}, fmt.Errorf("failed to create attendance break: %w", err)
	}
	return created.toDomain(), nil
}

// UpdateFields implements attendance.BreakRepository.
func (b *breakRepository) UpdateFields(ctx context.Context, id string, fields attendance.Fields) (attendance.Break, error) {
	converted, err := convertTimeFields(fields, "start_time", "end_time")
	if err != nil {
		return attendance.Break{}, err
	}

	r, err := b.table.updateFields(ctx, where("id = $%d", id), converted)
	if err != nil {
		return attendance.Break{}, err
	}
	if r == nil {
		return attendance.Break{}, attendance.ErrNoActiveBreak
	}
	return r.toDomain(), nil
}

func toBreaks(rows []breakRow) []attendance.Break {
	result := make([]attendance.Break, 0, len(rows))
	for _, r := range rows {
		result = append(result, r.toDomain())
	}
	return result
}
