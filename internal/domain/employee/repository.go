package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// ListTrackingAttendance returns active employees whose employment type is in AttendanceTypes
	ListTrackingAttendance(ctx context.Context, companyID string) ([]Employee, error)

	// ListCompanyIDs returns every company with at least one employee tracking attendance
	ListCompanyIDs(ctx context.Context) ([]string, error)
}
