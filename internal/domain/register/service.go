package register

import "context"

type RegisterService interface {
	Create(ctx context.Context, req CreateRegisterRequest) (RegisterResponse, error)
	Get(ctx context.Context, registerID string) (RegisterResponse, error)

	// ListMine returns owned registers for admins; for managers, the single
	// assigned register annotated with today's break usage.
	ListMine(ctx context.Context, day DayQuery) ([]RegisterResponse, error)

	// Open starts the register for the day. Idempotent per day window: an
	// existing log is returned unchanged unless a differing explicit opening
	// time is supplied, in which case its timestamp is corrected.
	Open(ctx context.Context, req OpenRegisterRequest) (LogResponse, error)

	// TodayLog returns the log for the given day window, ErrLogNotFound when
	// the register has not been opened.
	TodayLog(ctx context.Context, registerID string, day DayQuery) (LogResponse, error)
}
