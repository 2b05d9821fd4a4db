package user

import "github.com/cmlabs-hris/hris-attendance-go/internal/pkg/apperror"

var (
	ErrCallerMissing           = apperror.New(apperror.KindForbidden, "caller identity is missing")
	ErrEmployeeIDRequired      = apperror.New(apperror.KindForbidden, "employee ID is required")
	ErrCompanyIDRequired       = apperror.New(apperror.KindForbidden, "company ID is required")
	ErrInsufficientPermissions = apperror.New(apperror.KindForbidden, "insufficient permissions")
)
