package rollcall

import (
	"context"
	"time"
)

type RollcallRepository interface {
	Create(ctx context.Context, rc Rollcall) (Rollcall, error)
	GetByID(ctx context.Context, id string) (Rollcall, error)

	// GetByEmployeeAndLog finds the rollcall for one employee on one register
	// log, nil when the employee has not been marked yet.
	GetByEmployeeAndLog(ctx context.Context, employeeID, registerLogID string) (*Rollcall, error)

	ListByRegisterLog(ctx context.Context, registerLogID string) ([]Rollcall, error)

	// MarkPresent sets present time and clears any absence mark.
	MarkPresent(ctx context.Context, id string, presentAt time.Time) error

	// MarkAbsent stamps the absence time.
	MarkAbsent(ctx context.Context, id string, absentAt time.Time) error

	// ClearAbsent removes the absence mark.
	ClearAbsent(ctx context.Context, id string) error

	SetHalfDay(ctx context.Context, id string, halfDay bool) error

	DeleteByEmployee(ctx context.Context, employeeID string) error
}

type BreakLogRepository interface {
	// CreateIfNoneOpen inserts a break only when the rollcall has no open
	// break, in a single conditional statement so two concurrent starts
	// cannot both succeed. Returns ErrBreakOpen otherwise.
	CreateIfNoneOpen(ctx context.Context, b BreakLog) (BreakLog, error)

	// Create inserts unconditionally; used for already-closed intervals such
	// as a recorded absence span.
	Create(ctx context.Context, b BreakLog) (BreakLog, error)

	GetByID(ctx context.Context, id string) (BreakLog, error)

	// Close stamps the break end. ErrBreakClosed when it already ended.
	Close(ctx context.Context, id string, endedAt time.Time) error

	// CloseOpenForRollcall ends any open break at the given time. Used when
	// an absence mark supersedes a running break.
	CloseOpenForRollcall(ctx context.Context, rollcallID string, endedAt time.Time) error

	ListByRollcall(ctx context.Context, rollcallID string) ([]BreakLog, error)

	// ListOpenByRegisterLog returns every running break under one register
	// log, newest first, with the employee name joined in.
	ListOpenByRegisterLog(ctx context.Context, registerLogID string) ([]OpenBreakRow, error)

	DeleteByEmployee(ctx context.Context, employeeID string) error
}

// OpenBreakRow is the on-break board projection.
type OpenBreakRow struct {
	BreakLog
	EmployeeName string
}
