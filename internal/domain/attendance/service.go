package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations.
// Operations on "my" record act on the employee taken from the caller in ctx.
type AttendanceService interface {
	// Status returns the caller's record for the date, creating a default one if missing
	Status(ctx context.Context, req StatusRequest) (AttendanceResponse, error)

	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	StartBreak(ctx context.Context, req StartBreakRequest) (AttendanceResponse, error)
	EndBreak(ctx context.Context, req EndBreakRequest) (AttendanceResponse, error)

	// ProvisionDefaults creates default records for every eligible employee lacking one on date
	ProvisionDefaults(ctx context.Context, companyID string, date time.Time) (ProvisionResult, error)

	Get(ctx context.Context, id string) (AttendanceResponse, error)
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	Stats(ctx context.Context, req StatsRequest) (StatsResponse, error)
}
