package rollcall

import "context"

type RollcallService interface {
	// MarkPresent records an arrival. Calling it again for an employee who
	// already walked out clears the absence and keeps the original arrival.
	MarkPresent(ctx context.Context, req *MarkRequest) (RollcallResponse, error)
	// MarkAbsent records a walk-out, closing any break still open at that
	// moment.
	MarkAbsent(ctx context.Context, req *MarkRequest) (RollcallResponse, error)
	// ReturnFromAbsence converts a recorded absence into a break spanning
	// the time away.
	ReturnFromAbsence(ctx context.Context, req *MarkRequest) (RollcallResponse, error)
	StartBreak(ctx context.Context, req *StartBreakRequest) (BreakLogResponse, error)
	EndBreak(ctx context.Context, breakID string) (BreakLogResponse, error)
	SetHalfDay(ctx context.Context, rollcallID string, halfDay bool) (RollcallResponse, error)
	Status(ctx context.Context, employeeID, registerLogID string) (StatusResponse, error)
	ActiveBreaks(ctx context.Context, registerLogID string) ([]ActiveBreakResponse, error)
	DayLog(ctx context.Context, employeeID, registerLogID string) (DayLogResponse, error)
}
