package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/vacation"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type vacationRow struct {
	ID              string     `db:"id"`
	CompanyID       string     `db:"company_id"`
	RequestedBy     string     `db:"requested_by"`
	TypeID          string     `db:"type_id"`
	FromDate        time.Time  `db:"from_date"`
	ToDate          time.Time  `db:"to_date"`
	TotalDays       int        `db:"total_days"`
	Reason          string     `db:"reason"`
	Status          string     `db:"status"`
	ApprovedBy      *string    `db:"approved_by"`
	ApprovedAt      *time.Time `db:"approved_at"`
	RejectionReason *string    `db:"rejection_reason"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

var vacationColumns = []string{
	"id", "company_id", "requested_by", "type_id", "from_date", "to_date", "total_days",
	"reason", "status", "approved_by", "approved_at", "rejection_reason", "created_at", "updated_at",
}

func (r vacationRow) values() []interface{} {
	return []interface{}{
		r.ID, r.CompanyID, r.RequestedBy, r.TypeID, r.FromDate, r.ToDate, r.TotalDays,
		r.Reason, r.Status, r.ApprovedBy, r.ApprovedAt, r.RejectionReason, r.CreatedAt, r.UpdatedAt,
	}
}

func (r vacationRow) toDomain() vacation.VacationRequest {
	return vacation.VacationRequest{
		ID:              r.ID,
		CompanyID:       r.CompanyID,
		RequestedBy:     r.RequestedBy,
		TypeID:          r.TypeID,
		FromDate:        r.FromDate,
		ToDate:          r.ToDate,
		TotalDays:       r.TotalDays,
		Reason:          r.Reason,
		Status:          vacation.Status(r.Status),
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      r.ApprovedAt,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

type vacationRepository struct {
	table table[vacationRow]
}

func NewVacationRepository(db *database.DB) vacation.VacationRepository {
	return &vacationRepository{
		table: newTable[vacationRow](db, "vacation_requests", vacationColumns...),
	}
}

// GetByID implements vacation.VacationRepository.
func (v *vacationRepository) GetByID(ctx context.Context, id string, companyID string) (vacation.VacationRequest, error) {
	r, err := v.table.findOne(ctx, where("id = $%d", id).and("company_id = $%d", companyID))
	if err != nil {
		return vacation.VacationRequest{}, err
	}
	if r == nil {
		return vacation.VacationRequest{}, vacation.ErrVacationNotFound
	}
	return r.toDomain(), nil
}

// ListByRequester implements vacation.VacationRepository.
func (v *vacationRepository) ListByRequester(ctx context.Context, requestedBy string, companyID string) ([]vacation.VacationRequest, error) {
	c := where("requested_by = $%d", requestedBy).and("company_id = $%d", companyID)

	rows, err := v.table.findMany(ctx, c, "ORDER BY from_date")
	if err != nil {
		return nil, err
	}
	return toVacations(rows), nil
}

// List implements vacation.VacationRepository.
func (v *vacationRepository) List(ctx context.Context, filter vacation.VacationFilter, companyID string) ([]vacation.VacationRequest, int64, error) {
	c := where("company_id = $%d", companyID)
	if filter.RequestedBy != nil {
		c = c.and("requested_by = $%d", *filter.RequestedBy)
	}
	if filter.TypeID != nil {
		c = c.and("type_id = $%d", *filter.TypeID)
	}
	if filter.Status != nil {
		c = c.and("status = $%d", *filter.Status)
	}
	if filter.Year != nil {
		c = c.and("EXTRACT(YEAR FROM from_date) = $%d", *filter.Year)
	}

	total, err := v.table.count(ctx, c)
	if err != nil {
		return nil, 0, err
	}

	suffix := fmt.Sprintf("ORDER BY from_date DESC, created_at DESC LIMIT %d OFFSET %d", filter.Limit, filter.Offset())
	rows, err := v.table.findMany(ctx, c, suffix)
	if err != nil {
		return nil, 0, err
	}
	return toVacations(rows), total, nil
}

// ListApprovedOn implements vacation.VacationRepository.
func (v *vacationRepository) ListApprovedOn(ctx context.Context, companyID string, date time.Time) ([]vacation.VacationRequest, error) {
	c := where("company_id = $%d", companyID).
		and("status = $%d", string(vacation.StatusApproved)).
		and("from_date <= $%d", date).
		and("to_date >= $%d", date)

	rows, err := v.table.findMany(ctx, c, "")
	if err != nil {
		return nil, err
	}
	return toVacations(rows), nil
}

// Create implements vacation.VacationRepository.
func (v *vacationRepository) Create(ctx context.Context, req vacation.VacationRequest) (vacation.VacationRequest, error) {
	now := time.Now()
	created, err := v.table.insert(ctx, vacationRow{
		ID:              req.ID,
		CompanyID:       req.CompanyID,
		RequestedBy:     req.RequestedBy,
		TypeID:          req.TypeID,
		FromDate:        req.FromDate,
		ToDate:          req.ToDate,
		TotalDays:       req.TotalDays,
		Reason:          req.Reason,
		Status:          string(req.Status),
		ApprovedBy:      req.ApprovedBy,
		ApprovedAt:      req.ApprovedAt,
		RejectionReason: req.RejectionReason,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return vacation.VacationRequest{}, vacation.ErrDuplicateRequest
		}
		return vacation.VacationRequest{}, fmt.Errorf("failed to create vacation request: %w", err)
	}
	return created.toDomain(), nil
}

// UpdatePending implements vacation.VacationRepository.
func (v *vacationRepository) UpdatePending(ctx context.Context, id string, companyID string, fields vacation.Fields) (vacation.VacationRequest, error) {
	c := where("id = $%d", id).
		and("company_id = $%d", companyID).
		and("status = $%d", string(vacation.StatusPending))

	r, err := v.table.updateFields(ctx, c, fields)
	if err != nil {
		return vacation.VacationRequest{}, err
	}
	if r == nil {
		return vacation.VacationRequest{}, vacation.ErrAlreadyDecided
	}
	return r.toDomain(), nil
}

func toVacations(rows []vacationRow) []vacation.VacationRequest {
	result := make([]vacation.VacationRequest, 0, len(rows))
	for _, r := range rows {
		result = append(result, r.toDomain())
	}
	return result
}
