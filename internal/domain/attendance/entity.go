package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/timeofday"
)

type Status string

const (
	StatusDefault Status = "default"
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half_day"
	StatusOnLeave Status = "on_leave"
	StatusHoliday Status = "holiday"
	StatusDayOff  Status = "day_off"
)

type PresentStatus string

const (
	PresentStatusNone     PresentStatus = ""
	PresentStatusCheckIn  PresentStatus = "check_in"
	PresentStatusCheckOut PresentStatus = "check_out"
	PresentStatusOnBreak  PresentStatus = "on_break"
)

type Type string

const (
	TypeWorking Type = "working"
	TypeLeave   Type = "leave"
	TypeHoliday Type = "holiday"
	TypeDayOff  Type = "dayoff"
	TypeAbsent  Type = "absent"
)

type AbsenceKind string

const (
	AbsenceNone     AbsenceKind = ""
	AbsenceVacation AbsenceKind = "vacation"
	AbsenceHoliday  AbsenceKind = "public_holiday"
)

// AbsenceReference points at the reason a day is not worked: nothing, a vacation or a public holiday.
type AbsenceReference struct {
	kind AbsenceKind
	id   string
}

func NoAbsence() AbsenceReference {
	return AbsenceReference{}
}

func VacationAbsence(vacationID string) AbsenceReference {
	return AbsenceReference{kind: AbsenceVacation, id: vacationID}
}

func HolidayAbsence(holidayID string) AbsenceReference {
	return AbsenceReference{kind: AbsenceHoliday, id: holidayID}
}

// NewAbsenceReference rebuilds a reference from its stored kind and id.
func NewAbsenceReference(kind AbsenceKind, id *string) AbsenceReference {
	if id == nil || *id == "" {
		return NoAbsence()
	}
	switch kind {
	case AbsenceVacation:
		return VacationAbsence(*id)
	case AbsenceHoliday:
		return HolidayAbsence(*id)
	default:
		return NoAbsence()
	}
}

func (a AbsenceReference) Kind() AbsenceKind {
	return a.kind
}

// ID returns the referenced record id, empty when Kind is AbsenceNone.
func (a AbsenceReference) ID() string {
	return a.id
}

func (a AbsenceReference) IsNone() bool {
	return a.kind == AbsenceNone
}

// VacationID returns the id when the reference is a vacation.
func (a AbsenceReference) VacationID() (string, bool) {
	return a.id, a.kind == AbsenceVacation
}

// HolidayID returns the id when the reference is a public holiday.
func (a AbsenceReference) HolidayID() (string, bool) {
	return a.id, a.kind == AbsenceHoliday
}

// Attendance is one employee's record for one calendar day.
// WorkingHours and TotalBreakTime are derived on check-out from the times and Breaks.
type Attendance struct {
	ID             string
	CompanyID      string
	EmployeeID     string
	Date           time.Time
	CheckInTime    *string
	CheckOutTime   *string
	Status         Status
	PresentStatus  PresentStatus
	WorkingHours   *float64
	TotalBreakTime *float64
	LateMinutes    int
	Notes          *string
	Location       *string
	IsRemote       bool
	Absence        AbsenceReference
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Breaks []Break
}

// NewDefault builds the placeholder record created by status queries and provisioning.
func NewDefault(companyID, employeeID string, date time.Time) Attendance {
	return Attendance{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Date:       timeofday.DateOf(date),
		Status:     StatusDefault,
	}
}

func (a *Attendance) HasCheckedIn() bool {
	return a.CheckInTime != nil
}

func (a *Attendance) HasCheckedOut() bool {
	return a.CheckOutTime != nil
}

// CheckIn marks the employee present. Showing up overrides a provisioned absence.
func (a *Attendance) CheckIn(date time.Time, checkInTime string) {
	a.Date = timeofday.DateOf(date)
	a.Absence = NoAbsence()
	a.CheckInTime = &checkInTime
	a.Status = StatusPresent
	a.PresentStatus = PresentStatusCheckIn
}

// CheckOut records the check-out time and recomputes the derived hours.
func (a *Attendance) CheckOut(checkOutTime string) error {
	if a.CheckInTime == nil {
		return ErrNotCheckedIn
	}
	if _, err := timeofday.Parse(checkOutTime); err != nil {
		return err
	}

	a.CheckOutTime = &checkOutTime
	a.PresentStatus = PresentStatusCheckOut
	return a.UpdateWorkingHours()
}

// UpdateWorkingHours recomputes TotalBreakTime and WorkingHours.
func (a *Attendance) UpdateWorkingHours() error {
	breakMinutes := a.TotalBreakMinutes()
	totalBreak := timeofday.MinutesToHours(breakMinutes)
	a.TotalBreakTime = &totalBreak

	hours, err := a.calculateWorkingHours(breakMinutes)
	if err != nil {
		return err
	}
	a.WorkingHours = &hours
	return nil
}

func (a *Attendance) calculateWorkingHours(breakMinutes int) (float64, error) {
	if a.CheckInTime == nil || a.CheckOutTime == nil {
		return 0, nil
	}

	total, err := timeofday.Between(*a.CheckInTime, *a.CheckOutTime)
	if err != nil {
		return 0, err
	}

	return timeofday.MinutesToHours(max(0, total-breakMinutes)), nil
}

// TotalBreakMinutes sums the durations of completed breaks.
func (a *Attendance) TotalBreakMinutes() int {
	total := 0
	for _, b := range a.Breaks {
		if b.DurationMinutes != nil {
			total += *b.DurationMinutes
		}
	}
	return total
}

func (a *Attendance) IsCurrentlyOnBreak() bool {
	_, ok := a.CurrentBreak()
	return ok
}

func (a *Attendance) CurrentBreak() (Break, bool) {
	for _, b := range a.Breaks {
		if b.IsOngoing() {
			return b, true
		}
	}
	return Break{}, false
}

func (a *Attendance) BreakCount() int {
	return len(a.Breaks)
}

func (a *Attendance) IsOnApprovedLeave() bool {
	_, ok := a.Absence.VacationID()
	return a.Status == StatusOnLeave && ok
}

func (a *Attendance) IsPublicHoliday() bool {
	_, ok := a.Absence.HolidayID()
	return a.Status == StatusHoliday && ok
}

func (a *Attendance) IsFullWorkingDay() bool {
	return a.Status == StatusPresent && a.HasCheckedIn() && a.HasCheckedOut()
}

// AttendanceType classifies the day for reporting.
func (a *Attendance) AttendanceType() Type {
	switch {
	case a.IsPublicHoliday():
		return TypeHoliday
	case a.IsOnApprovedLeave():
		return TypeLeave
	case a.Status == StatusDayOff:
		return TypeDayOff
	case a.Status == StatusPresent, a.Status == StatusLate, a.Status == StatusHalfDay:
		return TypeWorking
	default:
		return TypeAbsent
	}
}

func (a *Attendance) SetVacation(vacationID string) {
	a.Absence = VacationAbsence(vacationID)
}

func (a *Attendance) SetHoliday(holidayID string) {
	a.Absence = HolidayAbsence(holidayID)
}

func (a *Attendance) ClearAbsence() {
	a.Absence = NoAbsence()
}
