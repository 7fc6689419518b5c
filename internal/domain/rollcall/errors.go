package rollcall

import "errors"

var (
	ErrRollcallNotFound = errors.New("rollcall record not found")
	ErrBreakNotFound    = errors.New("break log not found")
	ErrBreakOpen        = errors.New("employee is already on break")
	ErrBreakClosed      = errors.New("break has already ended")
	ErrNotAbsent        = errors.New("employee was not marked absent")
)
