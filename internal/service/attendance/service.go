package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/timeofday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	attendance.BreakRepository
	employee.EmployeeRepository
	leaves attendance.EmployeeLeaveLookup
	clock  timeofday.Clock
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	breakRepo attendance.BreakRepository,
	employeeRepo employee.EmployeeRepository,
	leaves attendance.EmployeeLeaveLookup,
	clock timeofday.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepo,
		BreakRepository:      breakRepo,
		EmployeeRepository:   employeeRepo,
		leaves:               leaves,
		clock:                clock,
	}
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// resolveDate parses a validated YYYY-MM-DD value, defaulting to today.
func (a *AttendanceServiceImpl) resolveDate(s string) time.Time {
	if s == "" {
		return a.clock.Today()
	}
	date, _ := validator.ParseDate(s)
	return date
}

// resolveTime defaults an omitted time of day to the current wall clock.
func (a *AttendanceServiceImpl) resolveTime(s string) string {
	if s == "" {
		return a.clock.Now()
	}
	return s
}

// Status implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Status(ctx context.Context, req attendance.StatusRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	caller, err := user.EmployeeFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.ensureStatus(ctx, caller, a.resolveDate(req.Date))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := a.loadBreaks(ctx, &record); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return record.ToResponse(a.clock.Now()), nil
}

// ensureStatus returns the caller's record for date, creating a default one when missing.
// A concurrent request that inserted first wins; its row is returned.
func (a *AttendanceServiceImpl) ensureStatus(ctx context.Context, caller user.Caller, date time.Time) (attendance.Attendance, error) {
	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, caller.EmployeeID, date, caller.CompanyID)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	if existing != nil {
		return *existing, nil
	}

	record := attendance.NewDefault(caller.CompanyID, caller.EmployeeID, date)
	record.ID = newID()

	created, err := a.AttendanceRepository.Create(ctx, record)
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, attendance.ErrAttendanceExists) {
		return attendance.Attendance{}, err
	}

	slog.Debug("default attendance created concurrently, re-reading", "employee_id", caller.EmployeeID, "date", date.Format(validator.DateLayout))
	existing, err = a.AttendanceRepository.GetByEmployeeAndDate(ctx, caller.EmployeeID, date, caller.CompanyID)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	if existing == nil {
		return attendance.Attendance{}, attendance.ErrAttendanceExists
	}
	return *existing, nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	caller, err := user.EmployeeFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date := a.resolveDate(req.Date)
	checkInTime := a.resolveTime(req.CheckInTime)

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, caller.EmployeeID, date, caller.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	if existing != nil {
		if existing.HasCheckedIn() && !existing.HasCheckedOut() {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		}
		if existing.HasCheckedIn() && existing.HasCheckedOut() {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceDone
		}

		existing.CheckIn(date, checkInTime)
		fields := existing.CheckInFields()
		fields["location"] = req.Location
		fields["notes"] = req.Notes
		fields["is_remote"] = req.IsRemote

		// Guarded on check_in_time so a concurrent check-in that won is never overwritten
		updated, err := a.AttendanceRepository.UpdateCheckIn(ctx, existing.ID, caller.CompanyID, fields)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		return updated.ToResponse(a.clock.Now()), nil
	}

	record := attendance.NewDefault(caller.CompanyID, caller.EmployeeID, date)
	record.ID = newID()
	record.Location = req.Location
	record.Notes = req.Notes
	record.IsRemote = req.IsRemote
	record.CheckIn(date, checkInTime)

	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("employee checked in", "employee_id", caller.EmployeeID, "date", created.Date.Format(validator.DateLayout), "time", checkInTime)
	return created.ToResponse(a.clock.Now()), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	caller, err := user.EmployeeFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date := a.resolveDate(req.Date)
	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, caller.EmployeeID, date, caller.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	if record == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}
	if !record.HasCheckedIn() {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if record.HasCheckedOut() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	if err := a.loadBreaks(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if record.IsCurrentlyOnBreak() || record.PresentStatus == attendance.PresentStatusOnBreak {
		return attendance.AttendanceResponse{}, attendance.ErrOnBreak
	}

	if err := record.CheckOut(a.resolveTime(req.CheckOutTime)); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	updated, err := a.AttendanceRepository.UpdateCheckOut(ctx, record.ID, caller.CompanyID, record.CheckOutFields())
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	updated.Breaks = record.Breaks

	slog.Info("employee checked out", "employee_id", caller.EmployeeID, "date", updated.Date.Format(validator.DateLayout), "working_hours", *record.WorkingHours)
	return updated.ToResponse(a.clock.Now()), nil
}

// StartBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) StartBreak(ctx context.Context, req attendance.StartBreakRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	caller, err := user.EmployeeFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, caller.EmployeeID, a.resolveDate(req.Date), caller.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	if record == nil || !record.HasCheckedIn() {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if record.HasCheckedOut() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	if err := a.loadBreaks(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if record.IsCurrentlyOnBreak() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyOnBreak
	}

	newBreak := attendance.Break{
		ID:           newID(),
		AttendanceID: record.ID,
		EmployeeID:   record.EmployeeID,
		CompanyID:    record.CompanyID,
	}
	if err := newBreak.Start(req.BreakType, a.resolveTime(req.StartTime), req.Notes, req.Location); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var updated attendance.Attendance
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		created, err := a.BreakRepository.Create(ctx, newBreak)
		if err != nil {
			return err
		}

		updated, err = a.AttendanceRepository.UpdateFields(ctx, record.ID, caller.CompanyID, attendance.Fields{
			"present_status": attendance.PresentStatusOnBreak,
		})
		if err != nil {
			return fmt.Errorf("failed to update present status: %w", err)
		}

		updated.Breaks = append(record.Breaks, created)
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return updated.ToResponse(a.clock.Now()), nil
}

// EndBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) EndBreak(ctx context.Context, req attendance.EndBreakRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	caller, err := user.EmployeeFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, caller.EmployeeID, a.resolveDate(req.Date), caller.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	if record == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}

	if err := a.loadBreaks(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	current, ok := record.CurrentBreak()
	if !ok {
		return attendance.AttendanceResponse{}, attendance.ErrNoActiveBreak
	}
	if err := current.End(a.resolveTime(req.EndTime)); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var updated attendance.Attendance
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		ended, err := a.BreakRepository.UpdateFields(ctx, current.ID, current.EndFields())
		if err != nil {
			return fmt.Errorf("failed to end break: %w", err)
		}

		updated, err = a.AttendanceRepository.UpdateFields(ctx, record.ID, caller.CompanyID, attendance.Fields{
			"present_status": attendance.PresentStatusCheckIn,
		})
		if err != nil {
			return fmt.Errorf("failed to update present status: %w", err)
		}

		updated.Breaks = make([]attendance.Break, 0, len(record.Breaks))
		for _, b := range record.Breaks {
			if b.ID == ended.ID {
				b = ended
			}
			updated.Breaks = append(updated.Breaks, b)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return updated.ToResponse(a.clock.Now()), nil
}

// ProvisionDefaults implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ProvisionDefaults(ctx context.Context, companyID string, date time.Time) (attendance.ProvisionResult, error) {
	date = timeofday.DateOf(date)

	var (
		employees []employee.Employee
		existing  []attendance.Attendance
		onLeave   map[string]string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = a.EmployeeRepository.ListTrackingAttendance(gctx, companyID)
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		existing, err = a.AttendanceRepository.ListByDate(gctx, companyID, date)
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}
		return nil
	})
	if a.leaves != nil {
		g.Go(func() error {
			var err error
			onLeave, err = a.leaves.ApprovedVacationsOn(gctx, companyID, date)
			if err != nil {
				return fmt.Errorf("failed to list approved vacations: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return attendance.ProvisionResult{}, err
	}

	recorded := make(map[string]struct{}, len(existing))
	for _, att := range existing {
		recorded[att.EmployeeID] = struct{}{}
	}

	missing := make([]attendance.Attendance, 0, len(employees))
	for _, emp := range employees {
		if _, ok := recorded[emp.ID]; ok {
			continue
		}

		record := attendance.NewDefault(companyID, emp.ID, date)
		record.ID = newID()
		if vacationID, ok := onLeave[emp.ID]; ok {
			record.Status = attendance.StatusOnLeave
			record.SetVacation(vacationID)
		}
		missing = append(missing, record)
	}

	result := attendance.ProvisionResult{Existing: len(existing)}
	if len(missing) == 0 {
		return result, nil
	}

	created, err := a.AttendanceRepository.CreateMany(ctx, missing)
	if err != nil {
		return result, err
	}
	result.Created = created

	slog.Info("provisioned default attendance",
		"company_id", companyID,
		"date", date.Format(validator.DateLayout),
		"created", created,
		"existing", result.Existing,
	)
	return result, nil
}

// Get implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	caller, err := user.CallerFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByID(ctx, id, caller.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if !user.HasPermission(caller.Role, user.PermissionAttendanceViewAll) && record.EmployeeID != caller.EmployeeID {
		return attendance.AttendanceResponse{}, user.ErrInsufficientPermissions
	}

	if err := a.loadBreaks(ctx, &record); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return record.ToResponse(a.clock.Now()), nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	caller, err := user.CallerFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	// Employees only ever see their own records
	if !user.HasPermission(caller.Role, user.PermissionAttendanceViewAll) {
		if caller.EmployeeID == "" {
			return attendance.ListAttendanceResponse{}, user.ErrEmployeeIDRequired
		}
		filter.EmployeeID = &caller.EmployeeID
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter, caller.CompanyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	if err := a.attachBreaks(ctx, records); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	now := a.clock.Now()
	resp := attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		Attendances: make([]attendance.AttendanceResponse, 0, len(records)),
	}
	for _, r := range records {
		resp.Attendances = append(resp.Attendances, r.ToResponse(now))
	}
	return resp, nil
}

// Stats implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Stats(ctx context.Context, req attendance.StatsRequest) (attendance.StatsResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.StatsResponse{}, err
	}

	caller, err := user.CallerFromContext(ctx)
	if err != nil {
		return attendance.StatsResponse{}, err
	}

	employeeID := req.EmployeeID
	if !user.HasPermission(caller.Role, user.PermissionAttendanceViewAll) {
		if caller.EmployeeID == "" {
			return attendance.StatsResponse{}, user.ErrEmployeeIDRequired
		}
		employeeID = &caller.EmployeeID
	}

	from, _ := validator.ParseDate(req.StartDate)
	to, _ := validator.ParseDate(req.EndDate)

	records, err := a.AttendanceRepository.ListInRange(ctx, caller.CompanyID, employeeID, from, to)
	if err != nil {
		return attendance.StatsResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	stats := attendance.StatsResponse{
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		TotalRecords: len(records),
	}
	for _, r := range records {
		switch r.Status {
		case attendance.StatusPresent:
			stats.TotalPresent++
		case attendance.StatusAbsent, attendance.StatusDefault:
			stats.TotalAbsent++
		}

		switch r.AttendanceType() {
		case attendance.TypeWorking:
			stats.Working++
		case attendance.TypeLeave:
			stats.Leave++
		case attendance.TypeHoliday:
			stats.Holiday++
		case attendance.TypeDayOff:
			stats.DayOff++
		}
	}
	return stats, nil
}

func (a *AttendanceServiceImpl) loadBreaks(ctx context.Context, record *attendance.Attendance) error {
	breaks, err := a.BreakRepository.ListByAttendanceID(ctx, record.ID)
	if err != nil {
		return fmt.Errorf("failed to list breaks: %w", err)
	}
	record.Breaks = breaks
	return nil
}

// attachBreaks loads the breaks of all records with one query.
func (a *AttendanceServiceImpl) attachBreaks(ctx context.Context, records []attendance.Attendance) error {
	if len(records) == 0 {
		return nil
	}

	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}

	breaks, err := a.BreakRepository.ListByAttendanceIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to list breaks: %w", err)
	}

	byAttendance := make(map[string][]attendance.Break, len(records))
	for _, b := range breaks {
		byAttendance[b.AttendanceID] = append(byAttendance[b.AttendanceID], b)
	}
	for i := range records {
		records[i].Breaks = byAttendance[records[i].ID]
	}
	return nil
}
