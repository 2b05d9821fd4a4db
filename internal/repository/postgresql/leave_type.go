package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/vacation"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) vacation.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

// GetByID implements vacation.LeaveTypeRepository.
func (l *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (vacation.LeaveType, error) {
	q := GetQuerier(ctx, l.db)
	query := `
		SELECT id, company_id, name, code, max_days_per_year, is_active, created_at, updated_at
		FROM leave_types
		WHERE id = $1 AND company_id = $2 AND is_active = TRUE
	`

	var lt vacation.LeaveType
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&lt.ID, &lt.CompanyID, &lt.Name, &lt.Code, &lt.MaxDaysPerYear, &lt.IsActive,
		&lt.CreatedAt, &lt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return vacation.LeaveType{}, vacation.ErrLeaveTypeNotFound
		}
		return vacation.LeaveType{}, fmt.Errorf("failed to get leave type: %w", err)
	}

	return lt, nil
}
