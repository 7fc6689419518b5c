package report

import (
	"context"
	"fmt"
	"time"

	"github.com/chandra447/dk-stores/internal/domain/employee"
	"github.com/chandra447/dk-stores/internal/domain/register"
	"github.com/chandra447/dk-stores/internal/domain/report"
	"github.com/chandra447/dk-stores/internal/domain/rollcall"
	"github.com/chandra447/dk-stores/internal/pkg/jwt"
	"github.com/chandra447/dk-stores/internal/pkg/utils"
)

type ReportServiceImpl struct {
	reportRepo   report.ReportRepository
	registerRepo register.RegisterRepository
	logRepo      register.LogRepository
	employeeRepo employee.EmployeeRepository
	breakRepo    rollcall.BreakLogRepository
}

func NewReportService(
	reportRepo report.ReportRepository,
	registerRepo register.RegisterRepository,
	logRepo register.LogRepository,
	employeeRepo employee.EmployeeRepository,
	breakRepo rollcall.BreakLogRepository,
) report.ReportService {
	return &ReportServiceImpl{
		reportRepo:   reportRepo,
		registerRepo: registerRepo,
		logRepo:      logRepo,
		employeeRepo: employeeRepo,
		breakRepo:    breakRepo,
	}
}

// scope resolves which registers the query may read: the explicit register
// after an access check, otherwise everything the caller owns or manages.
func (s *ReportServiceImpl) scope(ctx context.Context, query *report.RangeQuery) ([]string, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if query.RegisterID != nil {
		hasAccess, err := s.registerRepo.HasAccess(ctx, *query.RegisterID, identity.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to check register access: %w", err)
		}
		if !hasAccess {
			return nil, register.ErrAccessDenied
		}
		return []string{*query.RegisterID}, nil
	}

	return s.reportRepo.AccessibleRegisterIDs(ctx, identity.UserID)
}

// rangeData loads everything a range report needs in three queries.
func (s *ReportServiceImpl) rangeData(ctx context.Context, query *report.RangeQuery, registerIDs []string) ([]rollcall.Rollcall, map[string]employee.Employee, map[string][]rollcall.BreakLog, error) {
	from, to := query.Window()

	rollcalls, err := s.reportRepo.ListRollcalls(ctx, registerIDs, query.EmployeeID, from, to)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list rollcalls: %w", err)
	}

	employees, err := s.reportRepo.ListEmployees(ctx, registerIDs, query.EmployeeID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list employees: %w", err)
	}
	byID := make(map[string]employee.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	rollcallIDs := make([]string, 0, len(rollcalls))
	for _, rc := range rollcalls {
		rollcallIDs = append(rollcallIDs, rc.ID)
	}
	breaks, err := s.reportRepo.MapBreaks(ctx, rollcallIDs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load break logs: %w", err)
	}

	return rollcalls, byID, breaks, nil
}

// Dashboard implements report.ReportService.
func (s *ReportServiceImpl) Dashboard(ctx context.Context, query *report.RangeQuery) (report.DashboardStats, error) {
	if err := query.Validate(); err != nil {
		return report.DashboardStats{}, err
	}

	registerIDs, err := s.scope(ctx, query)
	if err != nil {
		return report.DashboardStats{}, err
	}
	if len(registerIDs) == 0 {
		return report.DashboardStats{}, nil
	}

	from, to := query.Window()
	registerDays, err := s.reportRepo.CountRegisterLogs(ctx, registerIDs, from, to)
	if err != nil {
		return report.DashboardStats{}, fmt.Errorf("failed to count register logs: %w", err)
	}

	rollcalls, employees, breaks, err := s.rangeData(ctx, query, registerIDs)
	if err != nil {
		return report.DashboardStats{}, err
	}

	stats := report.DashboardStats{RegisterDays: registerDays}
	now := time.Now()
	offset := query.Offset()

	var totalHours float64
	var totalBreak time.Duration

	for i := range rollcalls {
		rc := &rollcalls[i]
		if rc.PresentAt == nil {
			continue
		}
		e, ok := employees[rc.EmployeeID]
		if !ok {
			continue
		}

		if rc.HalfDay {
			stats.HalfDays++
			stats.WageDetails.HalfDayWage += e.RatePerDay / 2
		} else {
			stats.PresentDays++
			stats.WageDetails.FullDayWage += e.RatePerDay
		}

		totalHours += workedSpan(rc, &e, offset).Hours()
		totalBreak += rollcall.TotalBreak(breaks[rc.ID], now)
	}

	var allowedBreak int
	for _, e := range employees {
		allowedBreak += e.AllowedBreakMinutes
	}

	stats.TotalHours = round2(totalHours)
	stats.TotalBreakMinutes = int(totalBreak / time.Minute)
	stats.AllowedBreakMinutes = allowedBreak
	stats.WageDetails.TotalWage = stats.WageDetails.FullDayWage + stats.WageDetails.HalfDayWage
	stats.WageDetails.BreakCompliance = report.BreakCompliance{
		TotalAllowedMinutes: allowedBreak,
		TotalUsedMinutes:    int(totalBreak / time.Minute),
		Compliant:           totalBreak <= time.Duration(allowedBreak)*time.Minute,
	}

	return stats, nil
}

// Contribution implements report.ReportService. One cell per client-local
// day, first rollcall wins when several fall on the same date.
func (s *ReportServiceImpl) Contribution(ctx context.Context, query *report.RangeQuery) ([]report.ContributionDay, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	registerIDs, err := s.scope(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(registerIDs) == 0 {
		return []report.ContributionDay{}, nil
	}

	rollcalls, employees, _, err := s.rangeData(ctx, query, registerIDs)
	if err != nil {
		return nil, err
	}

	offset := query.Offset()
	seen := make(map[string]bool)
	days := make([]report.ContributionDay, 0, len(rollcalls))

	for i := range rollcalls {
		rc := &rollcalls[i]
		if rc.PresentAt == nil && rc.AbsentAt == nil {
			continue
		}
		e, ok := employees[rc.EmployeeID]
		if !ok {
			continue
		}

		date := localDateOf(rc, offset)
		if seen[date] {
			continue
		}
		seen[date] = true

		day := report.ContributionDay{
			Date:          date,
			RegisterLogID: rc.RegisterLogID,
			EmployeeID:    rc.EmployeeID,
			RollcallID:    rc.ID,
			HalfDay:       rc.HalfDay,
		}
		if rc.PresentAt != nil {
			day.Count = 1
			day.Intensity = intensity(rc, &e, offset)
		}
		days = append(days, day)
	}

	return days, nil
}

// Hourly implements report.ReportService. Work and break hours summed per
// client-local date.
func (s *ReportServiceImpl) Hourly(ctx context.Context, query *report.RangeQuery) ([]report.HourlyBucket, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	registerIDs, err := s.scope(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(registerIDs) == 0 {
		return []report.HourlyBucket{}, nil
	}

	rollcalls, employees, breaks, err := s.rangeData(ctx, query, registerIDs)
	if err != nil {
		return nil, err
	}

	offset := query.Offset()
	now := time.Now()

	type bucket struct{ work, brk float64 }
	byDate := make(map[string]*bucket)
	order := make([]string, 0)

	for i := range rollcalls {
		rc := &rollcalls[i]
		if rc.PresentAt == nil {
			continue
		}
		e, ok := employees[rc.EmployeeID]
		if !ok {
			continue
		}

		total := workedSpan(rc, &e, offset)
		brk := rollcall.TotalBreak(breaks[rc.ID], now)
		work := total - brk
		if work < 0 {
			work = 0
		}

		date := localDateOf(rc, offset)
		b := byDate[date]
		if b == nil {
			b = &bucket{}
			byDate[date] = b
			order = append(order, date)
		}
		b.work += work.Hours()
		b.brk += brk.Hours()
	}

	buckets := make([]report.HourlyBucket, 0, len(order))
	for _, date := range order {
		b := byDate[date]
		buckets = append(buckets, report.HourlyBucket{
			Date:          date,
			WorkDuration:  round2(b.work),
			BreakDuration: round2(b.brk),
			TotalHours:    round2(b.work + b.brk),
		})
	}
	return buckets, nil
}

// EmployeeRange implements report.ReportService.
func (s *ReportServiceImpl) EmployeeRange(ctx context.Context, employeeID string, fromMs, toMs int64) (*rollcall.DayLogResponse, error) {
	if _, err := jwt.IdentityFromContext(ctx); err != nil {
		return nil, err
	}

	e, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	from := time.UnixMilli(fromMs).UTC()
	to := time.UnixMilli(toMs).UTC()
	rc, err := s.reportRepo.FindRollcallInRange(ctx, e.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to find rollcall: %w", err)
	}
	if rc == nil {
		return nil, nil
	}

	log, err := s.logRepo.GetByID(ctx, rc.RegisterLogID)
	if err != nil {
		return nil, err
	}
	logs, err := s.breakRepo.ListByRollcall(ctx, rc.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list break logs: %w", err)
	}

	resp := rollcall.NewDayLogResponse(e, *rc, log, logs)
	return &resp, nil
}

// localDateOf buckets a rollcall by the client-local calendar date of its
// creation.
func localDateOf(rc *rollcall.Rollcall, offsetMinutes int) string {
	return utils.LocalDate(rc.CreatedAt, offsetMinutes)
}
