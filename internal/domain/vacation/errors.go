package vacation

import "github.com/cmlabs-hris/hris-attendance-go/internal/pkg/apperror"

var (
	// Leave type errors
	ErrLeaveTypeNotFound = apperror.New(apperror.KindNotFound, "leave type not found")

	// Submission errors
	ErrInvalidRange        = apperror.New(apperror.KindValidation, "to_date must be on or after from_date")
	ErrOverlappingRequest  = apperror.New(apperror.KindConflict, "you have already requested vacation for an overlapping period")
	ErrInsufficientBalance = apperror.New(apperror.KindPolicyViolation, "you do not have enough leave balance")
	ErrDuplicateRequest    = apperror.New(apperror.KindConflict, "an identical vacation request already exists")

	// Decision errors
	ErrVacationNotFound        = apperror.New(apperror.KindNotFound, "vacation request not found")
	ErrForbidden               = apperror.New(apperror.KindForbidden, "you do not have permission to decide on this vacation request")
	ErrNotRequester            = apperror.New(apperror.KindForbidden, "only the requester can cancel this vacation request")
	ErrAlreadyDecided          = apperror.New(apperror.KindPolicyViolation, "vacation request has already been decided")
	ErrInvalidDecision         = apperror.New(apperror.KindValidation, "status must be one of: approved, rejected, cancelled")
	ErrRejectionReasonRequired = apperror.New(apperror.KindValidation, "rejection_reason is required when rejecting")
)
