package vacation

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// LeaveType is a named leave policy carrying the annual day cap.
type LeaveType struct {
	ID             string
	CompanyID      string
	Name           string
	Code           *string
	MaxDaysPerYear int
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// VacationRequest is an employee's request for leave over an inclusive date range.
type VacationRequest struct {
	ID              string
	CompanyID       string
	RequestedBy     string
	TypeID          string
	FromDate        time.Time
	ToDate          time.Time
	TotalDays       int
	Reason          string
	Status          Status
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Relationships (for responses)
	LeaveTypeName *string
}

func (v VacationRequest) Range() DateRange {
	return DateRange{From: v.FromDate, To: v.ToDate}
}

func (v VacationRequest) IsPending() bool {
	return v.Status == StatusPending
}

// CountsAgainstBalance reports whether the request consumes the requester's allowance.
func (v VacationRequest) CountsAgainstBalance() bool {
	return v.Status != StatusCancelled && v.Status != StatusRejected
}

// Covers reports whether date falls inside the request's range.
func (v VacationRequest) Covers(date time.Time) bool {
	return Overlaps(v.Range(), DateRange{From: date, To: date})
}

// Decide moves a pending request to its terminal status.
func (v *VacationRequest) Decide(status Status, decidedBy string, rejectionReason *string, at time.Time) error {
	if !v.IsPending() {
		return ErrAlreadyDecided
	}

	switch status {
	case StatusApproved:
		v.RejectionReason = nil
	case StatusRejected:
		if rejectionReason == nil || *rejectionReason == "" {
			return ErrRejectionReasonRequired
		}
		v.RejectionReason = rejectionReason
	case StatusCancelled:
	default:
		return ErrInvalidDecision
	}

	v.Status = status
	v.ApprovedBy = &decidedBy
	v.ApprovedAt = &at
	return nil
}

// Cancel withdraws a pending request.
func (v *VacationRequest) Cancel() error {
	if !v.IsPending() {
		return ErrAlreadyDecided
	}
	v.Status = StatusCancelled
	return nil
}

// DecisionFields is the partial update written by Decide and Cancel.
func (v *VacationRequest) DecisionFields() Fields {
	return Fields{
		"status":           v.Status,
		"approved_by":      v.ApprovedBy,
		"approved_at":      v.ApprovedAt,
		"rejection_reason": v.RejectionReason,
	}
}
