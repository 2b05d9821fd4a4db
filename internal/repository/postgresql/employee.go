package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT id, user_id, company_id, employee_code, full_name,
		employment_type, employment_status, hire_date, created_at, updated_at
	FROM employees
`

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := employeeSelect + `WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// ListTrackingAttendance implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListTrackingAttendance(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	types := make([]string, 0, len(employee.AttendanceTypes))
	for _, t := range employee.AttendanceTypes {
		types = append(types, string(t))
	}

	query := employeeSelect + `
		WHERE company_id = $1
		  AND employment_status = $2
		  AND employment_type = ANY($3::text[])
		  AND deleted_at IS NULL
		ORDER BY employee_code
	`

	rows, err := q.Query(ctx, query, companyID, employee.EmploymentStatusActive, types)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// ListCompanyIDs implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListCompanyIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, e.db)

	types := make([]string, 0, len(employee.AttendanceTypes))
	for _, t := range employee.AttendanceTypes {
		types = append(types, string(t))
	}

	query := `
		SELECT DISTINCT company_id
		FROM employees
		WHERE employment_status = $1
		  AND employment_type = ANY($2::text[])
		  AND deleted_at IS NULL
	`

	rows, err := q.Query(ctx, query, employee.EmploymentStatusActive, types)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.UserID, &emp.CompanyID, &emp.EmployeeCode, &emp.FullName,
		&emp.EmploymentType, &emp.EmploymentStatus, &emp.HireDate, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}
