package report

import (
	"context"
	"time"

	"github.com/chandra447/dk-stores/internal/domain/employee"
	"github.com/chandra447/dk-stores/internal/domain/rollcall"
)

type ReportRepository interface {
	// AccessibleRegisterIDs returns the active registers the user can report
	// on: registers they own plus registers where they are an active manager.
	AccessibleRegisterIDs(ctx context.Context, userID string) ([]string, error)
	// CountRegisterLogs counts opening events for the registers in the window.
	CountRegisterLogs(ctx context.Context, registerIDs []string, from, to time.Time) (int, error)
	// ListRollcalls returns rollcalls created in the window for the given
	// registers, optionally narrowed to one employee.
	ListRollcalls(ctx context.Context, registerIDs []string, employeeID *string, from, to time.Time) ([]rollcall.Rollcall, error)
	// MapBreaks returns, for each rollcall id, its break intervals.
	MapBreaks(ctx context.Context, rollcallIDs []string) (map[string][]rollcall.BreakLog, error)
	// ListEmployees returns active employees of the given registers,
	// optionally narrowed to one employee.
	ListEmployees(ctx context.Context, registerIDs []string, employeeID *string) ([]employee.Employee, error)
	// FindRollcallInRange returns the first rollcall for the employee whose
	// creation time falls inside the window, or nil.
	FindRollcallInRange(ctx context.Context, employeeID string, from, to time.Time) (*rollcall.Rollcall, error)
}
