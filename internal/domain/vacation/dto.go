package vacation

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type SubmitRequest struct {
	TypeID   string `json:"type_id" validate:"required,uuid"`
	FromDate string `json:"from_date" validate:"required,date"`
	ToDate   string `json:"to_date" validate:"required,date"`
	Reason   string `json:"reason" validate:"required,max=1000"`

	// Parsed by Validate
	From time.Time `json:"-"`
	To   time.Time `json:"-"`
}

func (r *SubmitRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}

	r.From, _ = validator.ParseDate(r.FromDate)
	r.To, _ = validator.ParseDate(r.ToDate)
	return nil
}

type DecideRequest struct {
	ID              string  `json:"-"`
	Status          Status  `json:"status" validate:"required,oneof=approved rejected cancelled"`
	RejectionReason *string `json:"rejection_reason,omitempty" validate:"omitempty,max=500"`
}

func (r *DecideRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}

	if r.Status == StatusRejected && (r.RejectionReason == nil || validator.IsEmpty(*r.RejectionReason)) {
		return validator.ValidationErrors{{
			Field:   "rejection_reason",
			Message: "rejection_reason is required when rejecting",
		}}
	}
	return nil
}

type VacationFilter struct {
	RequestedBy *string `json:"requested_by,omitempty" validate:"omitempty,uuid"`
	TypeID      *string `json:"type_id,omitempty" validate:"omitempty,uuid"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected cancelled"`
	Year        *int    `json:"year,omitempty" validate:"omitempty,gte=1970,lte=9999"`

	// Pagination
	Page  int `json:"page" validate:"gte=0"`
	Limit int `json:"limit" validate:"gte=0,lte=100"`
}

func (f *VacationFilter) Validate() error {
	if err := validator.Struct(f); err != nil {
		return err
	}

	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	return nil
}

func (f VacationFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type BalanceRequest struct {
	TypeID string `json:"type_id" validate:"required,uuid"`
	Year   int    `json:"year" validate:"omitempty,gte=1970,lte=9999"`
}

func (r *BalanceRequest) Validate() error {
	return validator.Struct(r)
}

type VacationResponse struct {
	ID              string  `json:"id"`
	RequestedBy     string  `json:"requested_by"`
	TypeID          string  `json:"type_id"`
	LeaveTypeName   *string `json:"leave_type_name,omitempty"`
	FromDate        string  `json:"from_date"`
	ToDate          string  `json:"to_date"`
	TotalDays       int     `json:"total_days"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type ListVacationResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Vacations  []VacationResponse `json:"vacations"`
}

type BalanceResponse struct {
	TypeID         string `json:"type_id"`
	TypeName       string `json:"type_name"`
	Year           int    `json:"year"`
	MaxDaysPerYear int    `json:"max_days_per_year"`
	Taken          int    `json:"taken"`
	Remaining      int    `json:"remaining"`
}

func (v VacationRequest) ToResponse() VacationResponse {
	resp := VacationResponse{
		ID:              v.ID,
		RequestedBy:     v.RequestedBy,
		TypeID:          v.TypeID,
		LeaveTypeName:   v.LeaveTypeName,
		FromDate:        v.FromDate.Format(validator.DateLayout),
		ToDate:          v.ToDate.Format(validator.DateLayout),
		TotalDays:       v.TotalDays,
		Reason:          v.Reason,
		Status:          string(v.Status),
		ApprovedBy:      v.ApprovedBy,
		RejectionReason: v.RejectionReason,
		CreatedAt:       v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       v.UpdatedAt.Format(time.RFC3339),
	}
	if v.ApprovedAt != nil {
		at := v.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &at
	}
	return resp
}
