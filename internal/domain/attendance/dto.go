package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// StatusRequest asks for the caller's record on Date (today when empty).
type StatusRequest struct {
	Date string `json:"date" validate:"omitempty,date"`
}

func (r *StatusRequest) Validate() error {
	return validator.Struct(r)
}

type CheckInRequest struct {
	Date        string  `json:"date" validate:"omitempty,date"`
	CheckInTime string  `json:"check_in_time" validate:"omitempty,timeofday"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=255"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=500"`
	IsRemote    bool    `json:"is_remote"`
}

func (r *CheckInRequest) Validate() error {
	return validator.Struct(r)
}

type CheckOutRequest struct {
	Date         string `json:"date" validate:"omitempty,date"`
	CheckOutTime string `json:"check_out_time" validate:"omitempty,timeofday"`
}

func (r *CheckOutRequest) Validate() error {
	return validator.Struct(r)
}

// ========================================
// BREAK DTOs
// ========================================

type StartBreakRequest struct {
	Date      string    `json:"date" validate:"omitempty,date"`
	BreakType BreakType `json:"break_type" validate:"required,oneof=lunch tea meeting prayer personal smoking other"`
	StartTime string    `json:"start_time" validate:"omitempty,timeofday"`
	Notes     *string   `json:"notes,omitempty" validate:"omitempty,max=500"`
	Location  *string   `json:"location,omitempty" validate:"omitempty,max=255"`
}

func (r *StartBreakRequest) Validate() error {
	return validator.Struct(r)
}

type EndBreakRequest struct {
	Date    string `json:"date" validate:"omitempty,date"`
	EndTime string `json:"end_time" validate:"omitempty,timeofday"`
}

func (r *EndBreakRequest) Validate() error {
	return validator.Struct(r)
}

// ========================================
// QUERY DTOs
// ========================================

type AttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty" validate:"omitempty,uuid"`
	StartDate  *string `json:"start_date,omitempty" validate:"omitempty,date"`
	EndDate    *string `json:"end_date,omitempty" validate:"omitempty,date"`
	Status     *string `json:"status,omitempty" validate:"omitempty,oneof=default present absent late half_day on_leave holiday day_off"`

	// Pagination
	Page  int `json:"page" validate:"gte=0"`
	Limit int `json:"limit" validate:"gte=0,lte=100"`
}

func (f *AttendanceFilter) Validate() error {
	if err := validator.Struct(f); err != nil {
		return err
	}

	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit == 0 {
		f.Limit = 20
	}

	return validateRange(f.StartDate, f.EndDate)
}

// Offset is the number of rows skipped for the current page.
func (f AttendanceFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type StatsRequest struct {
	EmployeeID *string `json:"employee_id,omitempty" validate:"omitempty,uuid"`
	StartDate  string  `json:"start_date" validate:"required,date"`
	EndDate    string  `json:"end_date" validate:"required,date"`
}

func (r *StatsRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	return validateRange(&r.StartDate, &r.EndDate)
}

func validateRange(start, end *string) error {
	if start == nil || end == nil || *start == "" || *end == "" {
		return nil
	}

	from, _ := validator.ParseDate(*start)
	to, _ := validator.ParseDate(*end)
	if from.After(to) {
		return ErrInvalidDateRange
	}
	return nil
}

// ========================================
// RESPONSES
// ========================================

type BreakResponse struct {
	ID                string  `json:"id"`
	BreakType         string  `json:"break_type"`
	StartTime         string  `json:"start_time"`
	EndTime           *string `json:"end_time,omitempty"`
	DurationMinutes   *int    `json:"duration_minutes,omitempty"`
	FormattedDuration string  `json:"formatted_duration"`
	Status            string  `json:"status"`
	Notes             *string `json:"notes,omitempty"`
	Location          *string `json:"location,omitempty"`
}

type AttendanceResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	Date            string          `json:"date"`
	CheckInTime     *string         `json:"check_in_time,omitempty"`
	CheckOutTime    *string         `json:"check_out_time,omitempty"`
	Status          string          `json:"status"`
	PresentStatus   string          `json:"present_status,omitempty"`
	AttendanceType  string          `json:"attendance_type"`
	WorkingHours    *float64        `json:"working_hours,omitempty"`
	TotalBreakTime  *float64        `json:"total_break_time,omitempty"`
	LateMinutes     int             `json:"late_minutes"`
	Notes           *string         `json:"notes,omitempty"`
	Location        *string         `json:"location,omitempty"`
	IsRemote        bool            `json:"is_remote"`
	VacationID      *string         `json:"vacation_id,omitempty"`
	PublicHolidayID *string         `json:"public_holiday_id,omitempty"`
	Breaks          []BreakResponse `json:"breaks"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	Attendances []AttendanceResponse `json:"attendances"`
}

type StatsResponse struct {
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	TotalRecords int    `json:"total_records"`
	TotalPresent int    `json:"total_present"`
	TotalAbsent  int    `json:"total_absent"`
	Working      int    `json:"working"`
	Leave        int    `json:"leave"`
	Holiday      int    `json:"holiday"`
	DayOff       int    `json:"day_off"`
}

type ProvisionResult struct {
	Created  int64 `json:"created"`
	Existing int   `json:"existing"`
}

// ToResponse renders b for the API; now is the wall clock used for the overdue check.
func (b Break) ToResponse(now string) BreakResponse {
	return BreakResponse{
		ID:                b.ID,
		BreakType:         string(b.BreakType),
		StartTime:         b.StartTime,
		EndTime:           b.EndTime,
		DurationMinutes:   b.DurationMinutes,
		FormattedDuration: b.FormattedDuration(),
		Status:            string(b.Status(now)),
		Notes:             b.Notes,
		Location:          b.Location,
	}
}

func (a Attendance) ToResponse(now string) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		Date:           a.Date.Format(validator.DateLayout),
		CheckInTime:    a.CheckInTime,
		CheckOutTime:   a.CheckOutTime,
		Status:         string(a.Status),
		PresentStatus:  string(a.PresentStatus),
		AttendanceType: string(a.AttendanceType()),
		WorkingHours:   a.WorkingHours,
		TotalBreakTime: a.TotalBreakTime,
		LateMinutes:    a.LateMinutes,
		Notes:          a.Notes,
		Location:       a.Location,
		IsRemote:       a.IsRemote,
		Breaks:         make([]BreakResponse, 0, len(a.Breaks)),
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      a.UpdatedAt.Format(time.RFC3339),
	}

	if id, ok := a.Absence.VacationID(); ok {
		resp.VacationID = &id
	}
	if id, ok := a.Absence.HolidayID(); ok {
		resp.PublicHolidayID = &id
	}
	for _, b := range a.Breaks {
		resp.Breaks = append(resp.Breaks, b.ToResponse(now))
	}
	return resp
}
