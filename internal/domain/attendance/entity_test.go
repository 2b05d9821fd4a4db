package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestNewDefault(t *testing.T) {
	a := NewDefault("company-1", "employee-1", time.Date(2025, 3, 4, 17, 30, 0, 0, time.UTC))

	assert.Equal(t, StatusDefault, a.Status)
	assert.Equal(t, PresentStatusNone, a.PresentStatus)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), a.Date)
	assert.False(t, a.HasCheckedIn())
	assert.True(t, a.Absence.IsNone())
	assert.Equal(t, TypeAbsent, a.AttendanceType())
}

func TestAttendance_CheckIn(t *testing.T) {
	a := NewDefault("company-1", "employee-1", day(t, "2025-03-04"))
	a.CheckIn(day(t, "2025-03-04"), "09:00:00")

	require.NotNil(t, a.CheckInTime)
	assert.Equal(t, "09:00:00", *a.CheckInTime)
	assert.Equal(t, StatusPresent, a.Status)
	assert.Equal(t, PresentStatusCheckIn, a.PresentStatus)
	assert.Equal(t, TypeWorking, a.AttendanceType())
}

func TestAttendance_CheckInOverridesVacation(t *testing.T) {
	a := NewDefault("company-1", "employee-1", day(t, "2025-03-04"))
	a.Status = StatusOnLeave
	a.SetVacation("vacation-1")
	require.Equal(t, TypeLeave, a.AttendanceType())

	a.CheckIn(day(t, "2025-03-04"), "09:00:00")

	assert.True(t, a.Absence.IsNone())
	assert.Equal(t, StatusPresent, a.Status)
	assert.Equal(t, TypeWorking, a.AttendanceType())

	fields := a.CheckInFields()
	assert.Contains(t, fields, "absence_kind")
	assert.Nil(t, fields["absence_kind"])
	assert.Nil(t, fields["absence_id"])
}

func TestAttendance_CheckOut(t *testing.T) {
	t.Run("full day with lunch", func(t *testing.T) {
		a := NewDefault("company-1", "employee-1", day(t, "2025-03-04"))
		a.CheckIn(day(t, "2025-03-04"), "09:00:00")

		var lunch Break
		require.NoError(t, lunch.Start(BreakTypeLunch, "12:00:00", nil, nil))
		require.NoError(t, lunch.End("12:30:00"))
		a.Breaks = append(a.Breaks, lunch)

		require.NoError(t, a.CheckOut("18:00:00"))

		assert.Equal(t, PresentStatusCheckOut, a.PresentStatus)
		require.NotNil(t, a.TotalBreakTime)
		require.NotNil(t, a.WorkingHours)
		assert.Equal(t, 0.5, *a.TotalBreakTime)
		assert.Equal(t, 8.5, *a.WorkingHours)
		assert.True(t, a.IsFullWorkingDay())
	})

	t.Run("overnight shift", func(t *testing.T) {
		a := NewDefault("company-1", "employee-1", day(t, "2025-03-04"))
		a.CheckIn(day(t, "2025-03-04"), "22:00:00")

		require.NoError(t, a.CheckOut("06:00:00"))

		assert.Equal(t, 8.0, *a.WorkingHours)
		assert.Equal(t, 0.0, *a.TotalBreakTime)
	})

	t.Run("breaks longer than the shift clamp to zero", func(t *testing.T) {
		a := NewDefault("company-1", "employee-1", day(t, "2025-03-04"))
		a.CheckIn(day(t, "2025-03-04"), "09:00:00")
		a.Breaks = []Break{{StartTime: "09:05:00", EndTime: strPtr("10:05:00"), DurationMinutes: intPtr(60)}}

		require.NoError(t, a.CheckOut("09:30:00"))

		assert.Equal(t, 0.0, *a.WorkingHours)
		assert.Equal(t, 1.0, *a.TotalBreakTime)
	})

	t.Run("without check-in", func(t *testing.T) {
		a := NewDefault("company-1", "employee-1", day(t, "2025-03-04"))

		err := a.CheckOut("18:00:00")

		assert.ErrorIs(t, err, ErrNotCheckedIn)
		assert.Nil(t, a.CheckOutTime)
	})

	t.Run("malformed time", func(t *testing.T) {
		a := NewDefault("company-1", "employee-1", day(t, "2025-03-04"))
		a.CheckIn(day(t, "2025-03-04"), "09:00:00")

		assert.Error(t, a.CheckOut("6pm"))
		assert.Nil(t, a.CheckOutTime)
	})
}

func TestAttendance_CurrentBreak(t *testing.T) {
	a := NewDefault("company-1", "employee-1", day(t, "2025-03-04"))
	a.Breaks = []Break{
		{ID: "b1", StartTime: "10:00:00", EndTime: strPtr("10:15:00"), DurationMinutes: intPtr(15)},
		{ID: "b2", StartTime: "12:00:00", IsActive: true},
	}

	current, ok := a.CurrentBreak()
	require.True(t, ok)
	assert.Equal(t, "b2", current.ID)
	assert.True(t, a.IsCurrentlyOnBreak())
	assert.Equal(t, 2, a.BreakCount())
	assert.Equal(t, 15, a.TotalBreakMinutes())

	a.Breaks = a.Breaks[:1]
	assert.False(t, a.IsCurrentlyOnBreak())
}

func TestAttendance_AttendanceType(t *testing.T) {
	tests := []struct {
		name  string
		setup func(a *Attendance)
		want  Type
	}{
		{"present", func(a *Attendance) { a.Status = StatusPresent }, TypeWorking},
		{"late", func(a *Attendance) { a.Status = StatusLate }, TypeWorking},
		{"half day", func(a *Attendance) { a.Status = StatusHalfDay }, TypeWorking},
		{"approved leave", func(a *Attendance) {
			a.Status = StatusOnLeave
			a.SetVacation("vacation-1")
		}, TypeLeave},
		{"on leave without vacation", func(a *Attendance) { a.Status = StatusOnLeave }, TypeAbsent},
		{"public holiday", func(a *Attendance) {
			a.Status = StatusHoliday
			a.SetHoliday("holiday-1")
		}, TypeHoliday},
		{"day off", func(a *Attendance) { a.Status = StatusDayOff }, TypeDayOff},
		{"absent", func(a *Attendance) { a.Status = StatusAbsent }, TypeAbsent},
		{"default", func(a *Attendance) {}, TypeAbsent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewDefault("company-1", "employee-1", day(t, "2025-03-04"))
			tt.setup(&a)
			assert.Equal(t, tt.want, a.AttendanceType())
		})
	}
}

func TestAbsenceReference(t *testing.T) {
	a := NewDefault("company-1", "employee-1", day(t, "2025-03-04"))

	a.SetVacation("vacation-1")
	id, ok := a.Absence.VacationID()
	assert.True(t, ok)
	assert.Equal(t, "vacation-1", id)
	_, ok = a.Absence.HolidayID()
	assert.False(t, ok)

	a.SetHoliday("holiday-1")
	assert.Equal(t, AbsenceHoliday, a.Absence.Kind())
	_, ok = a.Absence.VacationID()
	assert.False(t, ok)

	a.ClearAbsence()
	assert.True(t, a.Absence.IsNone())
	assert.Equal(t, "", a.Absence.ID())

	assert.Equal(t, VacationAbsence("v"), NewAbsenceReference(AbsenceVacation, strPtr("v")))
	assert.Equal(t, HolidayAbsence("h"), NewAbsenceReference(AbsenceHoliday, strPtr("h")))
	assert.True(t, NewAbsenceReference(AbsenceVacation, nil).IsNone())
	assert.True(t, NewAbsenceReference("unknown", strPtr("x")).IsNone())
}
