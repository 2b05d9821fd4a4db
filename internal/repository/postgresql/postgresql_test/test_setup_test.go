package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup wraps a migrated test database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and skips the test when it is not set.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn, database.PoolOptions{MaxConns: 5})
	require.NoError(t, err, "failed to connect to test database")

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(context.Background()))
	t.Cleanup(db.Close)
	return setup
}

// TruncateAllTables removes every row written by the tests
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"attendance_breaks",
		"attendances",
		"vacation_requests",
		"leave_types",
		"employees",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

func (t *TestDatabaseSetup) CreateEmployee(tb testing.TB, companyID string, employmentType string) string {
	tb.Helper()

	id := uuid.Must(uuid.NewV7()).String()
	_, err := t.DB.Exec(context.Background(), `
		INSERT INTO employees (id, company_id, employee_code, full_name, employment_type, employment_status, hire_date)
		VALUES ($1, $2, $3, 'Test Employee', $4, 'active', '2024-01-01')
	`, id, companyID, "EMP-"+id[len(id)-6:], employmentType)
	require.NoError(tb, err)
	return id
}

func (t *TestDatabaseSetup) CreateLeaveType(tb testing.TB, companyID string, maxDays int) string {
	tb.Helper()

	id := uuid.Must(uuid.NewV7()).String()
	_, err := t.DB.Exec(context.Background(), `
		INSERT INTO leave_types (id, company_id, name, max_days_per_year)
		VALUES ($1, $2, $3, $4)
	`, id, companyID, "Annual "+id[len(id)-6:], maxDays)
	require.NoError(tb, err)
	return id
}
