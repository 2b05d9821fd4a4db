package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/lock"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/timeofday"
)

const provisionLockTTL = 10 * time.Minute

type ProvisioningJobs struct {
	attendanceSvc attendance.AttendanceService
	employeeRepo  employee.EmployeeRepository
	locker        lock.Locker
	clock         timeofday.Clock
	interval      time.Duration
}

func NewProvisioningJobs(
	attendanceSvc attendance.AttendanceService,
	employeeRepo employee.EmployeeRepository,
	locker lock.Locker,
	clock timeofday.Clock,
	interval time.Duration,
) *ProvisioningJobs {
	return &ProvisioningJobs{
		attendanceSvc: attendanceSvc,
		employeeRepo:  employeeRepo,
		locker:        locker,
		clock:         clock,
		interval:      interval,
	}
}

func (j *ProvisioningJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("provision_default_attendances", j.interval, j.ProvisionToday)
}

// ProvisionToday creates the missing default records of today for every company.
func (j *ProvisioningJobs) ProvisionToday(ctx context.Context) error {
	today := j.clock.Today()

	companyIDs, err := j.employeeRepo.ListCompanyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	var created int64
	failed := 0
	for _, companyID := range companyIDs {
		n, err := j.provisionCompany(ctx, companyID, today)
		if err != nil {
			slog.Error("Cron: Failed to provision attendances", "company_id", companyID, "date", today.Format("2006-01-02"), "error", err)
			failed++
			continue
		}
		created += n
	}

	slog.Info("Cron: Provisioned default attendances",
		"date", today.Format("2006-01-02"),
		"companies", len(companyIDs),
		"created", created,
		"failed", failed,
	)
	if failed > 0 {
		return fmt.Errorf("provisioning failed for %d of %d companies", failed, len(companyIDs))
	}
	return nil
}

func (j *ProvisioningJobs) provisionCompany(ctx context.Context, companyID string, date time.Time) (int64, error) {
	key := fmt.Sprintf("provision:%s:%s", companyID, date.Format("2006-01-02"))

	token, err := j.locker.Lock(ctx, key, provisionLockTTL)
	if err != nil {
		return 0, err
	}
	if token == "" {
		slog.Debug("Cron: Provisioning held by another instance", "company_id", companyID)
		return 0, nil
	}
	defer func() {
		if err := j.locker.Unlock(context.WithoutCancel(ctx), key, token); err != nil {
			slog.Warn("Cron: Failed to release provisioning lock", "key", key, "error", err)
		}
	}()

	result, err := j.attendanceSvc.ProvisionDefaults(ctx, companyID, date)
	if err != nil {
		return 0, err
	}
	return result.Created, nil
}
