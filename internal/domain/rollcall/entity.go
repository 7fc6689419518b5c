package rollcall

import "time"

// Rollcall is the per-employee-per-day attendance record, one per
// (register log, employee) pair.
type Rollcall struct {
	ID            string
	RegisterLogID string
	EmployeeID    string
	PresentAt     *time.Time
	AbsentAt      *time.Time
	HalfDay       bool
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BreakLog is one break or errand interval. A nil BreakEnd means the break is
// still running; at most one open break exists per rollcall.
type BreakLog struct {
	ID         string
	RollcallID string
	EmployeeID string
	BreakStart time.Time
	BreakEnd   *time.Time
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsOpen reports whether the break has not ended yet.
func (b *BreakLog) IsOpen() bool {
	return b.BreakEnd == nil
}

// Duration returns the break length, using now for an open break.
func (b *BreakLog) Duration(now time.Time) time.Duration {
	end := now
	if b.BreakEnd != nil {
		end = *b.BreakEnd
	}
	d := end.Sub(b.BreakStart)
	if d < 0 {
		return 0
	}
	return d
}
