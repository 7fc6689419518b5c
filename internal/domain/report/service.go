package report

import (
	"context"

	"github.com/chandra447/dk-stores/internal/domain/rollcall"
)

type ReportService interface {
	Dashboard(ctx context.Context, query *RangeQuery) (DashboardStats, error)
	Contribution(ctx context.Context, query *RangeQuery) ([]ContributionDay, error)
	Hourly(ctx context.Context, query *RangeQuery) ([]HourlyBucket, error)
	// EmployeeRange returns the day log for the employee's rollcall inside
	// the window, or nil when the employee was never marked in it.
	EmployeeRange(ctx context.Context, employeeID string, fromMs, toMs int64) (*rollcall.DayLogResponse, error)
}
