package employee

import "github.com/cmlabs-hris/hris-attendance-go/internal/pkg/apperror"

var (
	ErrEmployeeNotFound = apperror.New(apperror.KindNotFound, "employee not found")
)
