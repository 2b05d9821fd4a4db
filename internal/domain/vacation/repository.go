package vacation

import (
	"context"
	"time"
)

// Fields is a partial update keyed by column name.
type Fields map[string]interface{}

type LeaveTypeRepository interface {
	// GetByID returns ErrLeaveTypeNotFound when the type does not exist in the company
	GetByID(ctx context.Context, id string, companyID string) (LeaveType, error)
}

type VacationRepository interface {
	// GetByID returns ErrVacationNotFound when the request does not exist in the company
	GetByID(ctx context.Context, id string, companyID string) (VacationRequest, error)

	// ListByRequester returns every request of requestedBy regardless of status
	ListByRequester(ctx context.Context, requestedBy string, companyID string) ([]VacationRequest, error)

	List(ctx context.Context, filter VacationFilter, companyID string) ([]VacationRequest, int64, error)

	// ListApprovedOn returns approved requests whose range contains date
	ListApprovedOn(ctx context.Context, companyID string, date time.Time) ([]VacationRequest, error)

	// Create returns ErrDuplicateRequest when the natural key is already taken
	Create(ctx context.Context, v VacationRequest) (VacationRequest, error)

	// UpdatePending writes fields only while the request is still pending, else ErrAlreadyDecided
	UpdatePending(ctx context.Context, id string, companyID string, fields Fields) (VacationRequest, error)
}
