package rollcall

import "time"

// Status is the derived live attendance state for one employee and day.
type Status string

const (
	StatusNotMarked Status = "not_marked"
	StatusPresent   Status = "present"
	StatusAbsent    Status = "absent"
	StatusOnBreak   Status = "checkout"

	// StatusRegisterNotStarted is the pseudo-state reported before the
	// register has been opened for the day.
	StatusRegisterNotStarted Status = "register_not_started"
)

// DeriveStatus computes the live status by precedence: an absence mark wins
// over everything, then an open break, then a presence mark.
func DeriveStatus(rc *Rollcall, openBreak *BreakLog) Status {
	if rc == nil {
		return StatusNotMarked
	}
	if rc.AbsentAt != nil {
		return StatusAbsent
	}
	if openBreak != nil {
		return StatusOnBreak
	}
	if rc.PresentAt != nil {
		return StatusPresent
	}
	return StatusNotMarked
}

// TotalBreak sums break usage across logs, counting an open break up to now.
func TotalBreak(logs []BreakLog, now time.Time) time.Duration {
	var total time.Duration
	for i := range logs {
		total += logs[i].Duration(now)
	}
	return total
}

// OpenBreak returns the currently running break, nil when none is open.
func OpenBreak(logs []BreakLog) *BreakLog {
	for i := range logs {
		if logs[i].IsOpen() {
			return &logs[i]
		}
	}
	return nil
}
