package register

import (
	"time"

	"github.com/chandra447/dk-stores/internal/pkg/utils"
	"github.com/chandra447/dk-stores/internal/pkg/validator"
)

type CreateRegisterRequest struct {
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
}

func (r *CreateRegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DayQuery selects the business-day window for a day-scoped operation. The
// client either supplies its local start/end of day directly or a timezone
// offset from which the server derives the window; with neither, the server's
// local day applies.
type DayQuery struct {
	DayStartMs      *int64 `json:"day_start,omitempty"`
	DayEndMs        *int64 `json:"day_end,omitempty"`
	TzOffsetMinutes *int   `json:"tz_offset_minutes,omitempty"`
}

func (q DayQuery) Window(now time.Time) utils.DayWindow {
	if q.DayStartMs != nil && q.DayEndMs != nil {
		return utils.WindowFromMillis(*q.DayStartMs, *q.DayEndMs)
	}
	if q.TzOffsetMinutes != nil {
		return utils.DayWindowAt(now, *q.TzOffsetMinutes)
	}
	_, serverOffset := now.Local().Zone()
	return utils.DayWindowAt(now, -serverOffset/60)
}

// Offset returns the client timezone offset in minutes, zero when absent.
func (q DayQuery) Offset() int {
	if q.TzOffsetMinutes != nil {
		return *q.TzOffsetMinutes
	}
	return 0
}

type OpenRegisterRequest struct {
	RegisterID    string `json:"-"`
	OpeningTimeMs *int64 `json:"opening_time,omitempty"`
	DayQuery
}

func (r *OpenRegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.RegisterID) {
		errs = append(errs, validator.ValidationError{
			Field:   "register_id",
			Message: "register_id must be a valid id",
		})
	}
	if (r.DayStartMs == nil) != (r.DayEndMs == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "day_start",
			Message: "day_start and day_end must be supplied together",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BreakTimeInfo summarizes the manager's own break allowance for today,
// attached when a manager lists their assigned register.
type BreakTimeInfo struct {
	AllowedMinutes int `json:"allowed"`
	UsedMinutes    int `json:"used"`
}

type RegisterResponse struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Address       *string        `json:"address,omitempty"`
	AvatarSeed    string         `json:"avatar_seed"`
	CreatedAtMs   int64          `json:"created_at"`
	BreakTimeInfo *BreakTimeInfo `json:"break_time_info,omitempty"`
}

type LogResponse struct {
	ID          string `json:"id"`
	RegisterID  string `json:"register_id"`
	OpenedAtMs  int64  `json:"opened_at"`
	CreatedBy   string `json:"created_by"`
	CreatedAtMs int64  `json:"created_at"`
}

func NewLogResponse(l Log) LogResponse {
	return LogResponse{
		ID:          l.ID,
		RegisterID:  l.RegisterID,
		OpenedAtMs:  l.OpenedAt.UnixMilli(),
		CreatedBy:   l.CreatedBy,
		CreatedAtMs: l.CreatedAt.UnixMilli(),
	}
}

func NewRegisterResponse(r Register) RegisterResponse {
	return RegisterResponse{
		ID:          r.ID,
		Name:        r.Name,
		Address:     r.Address,
		AvatarSeed:  r.AvatarSeed,
		CreatedAtMs: r.CreatedAt.UnixMilli(),
	}
}
