package vacation

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/vacation"
)

type fakeLeaveTypeRepo struct {
	types map[string]vacation.LeaveType
}

func (f *fakeLeaveTypeRepo) GetByID(_ context.Context, id string, companyID string) (vacation.LeaveType, error) {
	lt, ok := f.types[id]
	if !ok || lt.CompanyID != companyID || !lt.IsActive {
		return vacation.LeaveType{}, vacation.ErrLeaveTypeNotFound
	}
	return lt, nil
}

type vacationKey struct {
	requestedBy string
	from        string
	to          string
	typeID      string
}

// fakeVacationRepo keeps insertion order and enforces the natural key like the real table.
type fakeVacationRepo struct {
	requests []vacation.VacationRequest
	updates  int
}

func keyOf(v vacation.VacationRequest) vacationKey {
	return vacationKey{
		requestedBy: v.RequestedBy,
		from:        v.FromDate.Format("2006-01-02"),
		to:          v.ToDate.Format("2006-01-02"),
		typeID:      v.TypeID,
	}
}

func (f *fakeVacationRepo) GetByID(_ context.Context, id string, companyID string) (vacation.VacationRequest, error) {
	for _, r := range f.requests {
		if r.ID == id && r.CompanyID == companyID {
			return r, nil
		}
	}
	return vacation.VacationRequest{}, vacation.ErrVacationNotFound
}

func (f *fakeVacationRepo) ListByRequester(_ context.Context, requestedBy string, companyID string) ([]vacation.VacationRequest, error) {
	var result []vacation.VacationRequest
	for _, r := range f.requests {
		if r.RequestedBy == requestedBy && r.CompanyID == companyID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeVacationRepo) List(_ context.Context, filter vacation.VacationFilter, companyID string) ([]vacation.VacationRequest, int64, error) {
	var result []vacation.VacationRequest
	for _, r := range f.requests {
		if r.CompanyID != companyID {
			continue
		}
		if filter.RequestedBy != nil && r.RequestedBy != *filter.RequestedBy {
			continue
		}
		if filter.Status != nil && string(r.Status) != *filter.Status {
			continue
		}
		result = append(result, r)
	}
	return result, int64(len(result)), nil
}

func (f *fakeVacationRepo) ListApprovedOn(_ context.Context, companyID string, date time.Time) ([]vacation.VacationRequest, error) {
	var result []vacation.VacationRequest
	for _, r := range f.requests {
		if r.CompanyID == companyID && r.Status == vacation.StatusApproved && r.Covers(date) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeVacationRepo) Create(_ context.Context, v vacation.VacationRequest) (vacation.VacationRequest, error) {
	for _, r := range f.requests {
		if r.CompanyID == v.CompanyID && keyOf(r) == keyOf(v) {
			return vacation.VacationRequest{}, vacation.ErrDuplicateRequest
		}
	}
	v.CreatedAt = time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
	v.UpdatedAt = v.CreatedAt
	f.requests = append(f.requests, v)
	return v, nil
}

func (f *fakeVacationRepo) UpdatePending(_ context.Context, id string, companyID string, fields vacation.Fields) (vacation.VacationRequest, error) {
	for i, r := range f.requests {
		if r.ID != id || r.CompanyID != companyID {
			continue
		}
		if !r.IsPending() {
			return vacation.VacationRequest{}, vacation.ErrAlreadyDecided
		}
		for col, val := range fields {
			switch col {
			case "status":
				r.Status = val.(vacation.Status)
			case "approved_by":
				r.ApprovedBy = val.(*string)
			case "approved_at":
				r.ApprovedAt = val.(*time.Time)
			case "rejection_reason":
				r.RejectionReason = val.(*string)
			}
		}
		f.requests[i] = r
		f.updates++
		return r, nil
	}
	return vacation.VacationRequest{}, vacation.ErrVacationNotFound
}

// staleVacationRepo serves a fixed snapshot to GetByID, as a request that loaded
// the row before a concurrent decision landed would see it.
type staleVacationRepo struct {
	*fakeVacationRepo
	snapshot vacation.VacationRequest
}

func (s *staleVacationRepo) GetByID(context.Context, string, string) (vacation.VacationRequest, error) {
	return s.snapshot, nil
}
