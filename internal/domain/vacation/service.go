package vacation

import (
	"context"
	"time"
)

// VacationService defines business logic for vacation requests.
type VacationService interface {
	// Submit validates and stores a pending request for the calling employee
	Submit(ctx context.Context, req SubmitRequest) (VacationResponse, error)

	// Decide approves, rejects or cancels a pending request (owner/manager only)
	Decide(ctx context.Context, req DecideRequest) (VacationResponse, error)

	// Cancel withdraws the caller's own pending request
	Cancel(ctx context.Context, id string) (VacationResponse, error)

	Get(ctx context.Context, id string) (VacationResponse, error)
	List(ctx context.Context, filter VacationFilter) (ListVacationResponse, error)
	Balance(ctx context.Context, req BalanceRequest) (BalanceResponse, error)

	// ApprovedVacationsOn maps employee id to the approved request covering date
	ApprovedVacationsOn(ctx context.Context, companyID string, date time.Time) (map[string]string, error)
}
