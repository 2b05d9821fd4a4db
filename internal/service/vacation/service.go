package vacation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/vacation"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/timeofday"
	"github.com/google/uuid"
)

type VacationServiceImpl struct {
	vacation.LeaveTypeRepository
	vacation.VacationRepository
	clock timeofday.Clock
}

func NewVacationService(
	leaveTypeRepo vacation.LeaveTypeRepository,
	vacationRepo vacation.VacationRepository,
	clock timeofday.Clock,
) vacation.VacationService {
	return &VacationServiceImpl{
		LeaveTypeRepository: leaveTypeRepo,
		VacationRepository:  vacationRepo,
		clock:               clock,
	}
}

// Submit implements vacation.VacationService.
func (v *VacationServiceImpl) Submit(ctx context.Context, req vacation.SubmitRequest) (vacation.VacationResponse, error) {
	if err := req.Validate(); err != nil {
		return vacation.VacationResponse{}, err
	}

	caller, err := user.EmployeeFromContext(ctx)
	if err != nil {
		return vacation.VacationResponse{}, err
	}

	leaveType, err := v.LeaveTypeRepository.GetByID(ctx, req.TypeID, caller.CompanyID)
	if err != nil {
		return vacation.VacationResponse{}, err
	}

	if !vacation.RangeIsValid(req.From, req.To) {
		return vacation.VacationResponse{}, vacation.ErrInvalidRange
	}

	// Overlap is checked against every status, balance only against active requests
	existing, err := v.VacationRepository.ListByRequester(ctx, caller.EmployeeID, caller.CompanyID)
	if err != nil {
		return vacation.VacationResponse{}, fmt.Errorf("failed to list vacation requests: %w", err)
	}

	candidate := vacation.DateRange{From: req.From, To: req.To}
	if _, overlaps := vacation.FindOverlap(existing, candidate); overlaps {
		return vacation.VacationResponse{}, vacation.ErrOverlappingRequest
	}

	alreadyTaken := vacation.TakenDays(existing, leaveType.ID, req.From.Year())
	requestedDays := vacation.TotalDays(req.From, req.To, false)
	if !vacation.BalanceAvailable(alreadyTaken, requestedDays, leaveType.MaxDaysPerYear) {
		return vacation.VacationResponse{}, vacation.ErrInsufficientBalance
	}

	created, err := v.VacationRepository.Create(ctx, vacation.VacationRequest{
		ID:          uuid.Must(uuid.NewV7()).String(),
		CompanyID:   caller.CompanyID,
		RequestedBy: caller.EmployeeID,
		TypeID:      leaveType.ID,
		FromDate:    req.From,
		ToDate:      req.To,
		TotalDays:   requestedDays,
		Reason:      req.Reason,
		Status:      vacation.StatusPending,
	})
	if err != nil {
		return vacation.VacationResponse{}, err
	}

	created.LeaveTypeName = &leaveType.Name
	slog.Info("vacation request submitted",
		"vacation_id", created.ID,
		"employee_id", caller.EmployeeID,
		"type_id", leaveType.ID,
		"total_days", requestedDays,
	)
	return created.ToResponse(), nil
}

// Decide implements vacation.VacationService.
func (v *VacationServiceImpl) Decide(ctx context.Context, req vacation.DecideRequest) (vacation.VacationResponse, error) {
	caller, err := user.CallerFromContext(ctx)
	if err != nil {
		return vacation.VacationResponse{}, err
	}

	request, err := v.VacationRepository.GetByID(ctx, req.ID, caller.CompanyID)
	if err != nil {
		return vacation.VacationResponse{}, err
	}

	if !caller.CanApprove() {
		return vacation.VacationResponse{}, vacation.ErrForbidden
	}

	// A decided request stays decided whatever the new status is
	if !request.IsPending() {
		return vacation.VacationResponse{}, vacation.ErrAlreadyDecided
	}

	if err := req.Validate(); err != nil {
		return vacation.VacationResponse{}, err
	}

	if err := request.Decide(req.Status, caller.UserID, req.RejectionReason, v.clock.Instant()); err != nil {
		return vacation.VacationResponse{}, err
	}

	// A concurrent decision that landed first leaves no pending row to update
	updated, err := v.VacationRepository.UpdatePending(ctx, request.ID, caller.CompanyID, request.DecisionFields())
	if err != nil {
		return vacation.VacationResponse{}, err
	}

	slog.Info("vacation request decided", "vacation_id", updated.ID, "status", updated.Status, "decided_by", caller.UserID)
	return updated.ToResponse(), nil
}

// Cancel implements vacation.VacationService.
func (v *VacationServiceImpl) Cancel(ctx context.Context, id string) (vacation.VacationResponse, error) {
	caller, err := user.EmployeeFromContext(ctx)
	if err != nil {
		return vacation.VacationResponse{}, err
	}

	request, err := v.VacationRepository.GetByID(ctx, id, caller.CompanyID)
	if err != nil {
		return vacation.VacationResponse{}, err
	}

	if request.RequestedBy != caller.EmployeeID {
		return vacation.VacationResponse{}, vacation.ErrNotRequester
	}

	if err := request.Cancel(); err != nil {
		return vacation.VacationResponse{}, err
	}

	updated, err := v.VacationRepository.UpdatePending(ctx, request.ID, caller.CompanyID, request.DecisionFields())
	if err != nil {
		return vacation.VacationResponse{}, err
	}
	return updated.ToResponse(), nil
}

// Get implements vacation.VacationService.
func (v *VacationServiceImpl) Get(ctx context.Context, id string) (vacation.VacationResponse, error) {
	caller, err := user.CallerFromContext(ctx)
	if err != nil {
		return vacation.VacationResponse{}, err
	}

	request, err := v.VacationRepository.GetByID(ctx, id, caller.CompanyID)
	if err != nil {
		return vacation.VacationResponse{}, err
	}

	if !user.HasPermission(caller.Role, user.PermissionLeaveViewAll) && request.RequestedBy != caller.EmployeeID {
		return vacation.VacationResponse{}, user.ErrInsufficientPermissions
	}
	return request.ToResponse(), nil
}

// List implements vacation.VacationService.
func (v *VacationServiceImpl) List(ctx context.Context, filter vacation.VacationFilter) (vacation.ListVacationResponse, error) {
	if err := filter.Validate(); err != nil {
		return vacation.ListVacationResponse{}, err
	}

	caller, err := user.CallerFromContext(ctx)
	if err != nil {
		return vacation.ListVacationResponse{}, err
	}

	if !user.HasPermission(caller.Role, user.PermissionLeaveViewAll) {
		if caller.EmployeeID == "" {
			return vacation.ListVacationResponse{}, user.ErrEmployeeIDRequired
		}
		filter.RequestedBy = &caller.EmployeeID
	}

	requests, total, err := v.VacationRepository.List(ctx, filter, caller.CompanyID)
	if err != nil {
		return vacation.ListVacationResponse{}, fmt.Errorf("failed to list vacation requests: %w", err)
	}

	resp := vacation.ListVacationResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Vacations:  make([]vacation.VacationResponse, 0, len(requests)),
	}
	for _, r := range requests {
		resp.Vacations = append(resp.Vacations, r.ToResponse())
	}
	return resp, nil
}

// Balance implements vacation.VacationService.
func (v *VacationServiceImpl) Balance(ctx context.Context, req vacation.BalanceRequest) (vacation.BalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return vacation.BalanceResponse{}, err
	}

	caller, err := user.EmployeeFromContext(ctx)
	if err != nil {
		return vacation.BalanceResponse{}, err
	}

	year := req.Year
	if year == 0 {
		year = v.clock.Today().Year()
	}

	leaveType, err := v.LeaveTypeRepository.GetByID(ctx, req.TypeID, caller.CompanyID)
	if err != nil {
		return vacation.BalanceResponse{}, err
	}

	requests, err := v.VacationRepository.ListByRequester(ctx, caller.EmployeeID, caller.CompanyID)
	if err != nil {
		return vacation.BalanceResponse{}, fmt.Errorf("failed to list vacation requests: %w", err)
	}

	taken := vacation.TakenDays(requests, leaveType.ID, year)
	return vacation.BalanceResponse{
		TypeID:         leaveType.ID,
		TypeName:       leaveType.Name,
		Year:           year,
		MaxDaysPerYear: leaveType.MaxDaysPerYear,
		Taken:          taken,
		Remaining:      max(0, leaveType.MaxDaysPerYear-taken),
	}, nil
}

// ApprovedVacationsOn implements vacation.VacationService.
func (v *VacationServiceImpl) ApprovedVacationsOn(ctx context.Context, companyID string, date time.Time) (map[string]string, error) {
	requests, err := v.VacationRepository.ListApprovedOn(ctx, companyID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved vacations: %w", err)
	}

	byEmployee := make(map[string]string, len(requests))
	for _, r := range requests {
		if r.Covers(date) {
			byEmployee[r.RequestedBy] = r.ID
		}
	}
	return byEmployee, nil
}
