package attendance

import "github.com/cmlabs-hris/hris-attendance-go/internal/pkg/apperror"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn  = apperror.New(apperror.KindConflict, "you have already checked in for this date, please check out first")
	ErrAttendanceDone    = apperror.New(apperror.KindConflict, "attendance for this date is already complete")
	ErrAttendanceExists  = apperror.New(apperror.KindConflict, "attendance for this date was recorded by a concurrent request")
	ErrNotCheckedIn      = apperror.New(apperror.KindValidation, "you have not checked in for this date, please check in first")
	ErrAlreadyCheckedOut = apperror.New(apperror.KindConflict, "you have already checked out for this date")
	ErrOnBreak           = apperror.New(apperror.KindConflict, "you are currently on a break and cannot check out")

	// Break errors
	ErrAlreadyOnBreak = apperror.New(apperror.KindConflict, "you are already on a break")
	ErrNoActiveBreak  = apperror.New(apperror.KindConflict, "you are not on a break")

	// General errors
	ErrAttendanceNotFound = apperror.New(apperror.KindNotFound, "no attendance record found for the given employee and date")
	ErrInvalidDateRange   = apperror.New(apperror.KindValidation, "start_date must be on or before end_date")
)
