package rollcall

import (
	"time"

	"github.com/chandra447/dk-stores/internal/domain/employee"
	"github.com/chandra447/dk-stores/internal/domain/register"
	"github.com/chandra447/dk-stores/internal/pkg/validator"
)

type MarkRequest struct {
	EmployeeID    string `json:"employee_id"`
	RegisterLogID string `json:"register_log_id"`
}

func (r *MarkRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid id",
		})
	}
	if !validator.IsValidUUID(r.RegisterLogID) {
		errs = append(errs, validator.ValidationError{
			Field:   "register_log_id",
			Message: "register_log_id must be a valid id",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type StartBreakRequest struct {
	RollcallID string `json:"-"`
}

func (r *StartBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.RollcallID) {
		errs = append(errs, validator.ValidationError{
			Field:   "rollcall_id",
			Message: "rollcall_id must be a valid id",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RollcallResponse struct {
	ID            string `json:"id"`
	RegisterLogID string `json:"register_log_id"`
	EmployeeID    string `json:"employee_id"`
	PresentAtMs   *int64 `json:"present_at"`
	AbsentAtMs    *int64 `json:"absent_at"`
	HalfDay       bool   `json:"half_day"`
}

func NewRollcallResponse(rc Rollcall) RollcallResponse {
	return RollcallResponse{
		ID:            rc.ID,
		RegisterLogID: rc.RegisterLogID,
		EmployeeID:    rc.EmployeeID,
		PresentAtMs:   msPtr(rc.PresentAt),
		AbsentAtMs:    msPtr(rc.AbsentAt),
		HalfDay:       rc.HalfDay,
	}
}

type BreakLogResponse struct {
	ID           string `json:"id"`
	RollcallID   string `json:"rollcall_id"`
	EmployeeID   string `json:"employee_id"`
	BreakStartMs int64  `json:"break_start"`
	BreakEndMs   *int64 `json:"break_end"`
	IsActive     bool   `json:"is_active"`
}

func NewBreakLogResponse(b BreakLog) BreakLogResponse {
	return BreakLogResponse{
		ID:           b.ID,
		RollcallID:   b.RollcallID,
		EmployeeID:   b.EmployeeID,
		BreakStartMs: b.BreakStart.UnixMilli(),
		BreakEndMs:   msPtr(b.BreakEnd),
		IsActive:     b.IsOpen(),
	}
}

// StatusResponse is the derived live state for one employee and day.
type StatusResponse struct {
	Status          string  `json:"status"`
	RollcallID      *string `json:"rollcall_id"`
	CurrentBreakID  *string `json:"current_break_id"`
	BreakDurationMs *int64  `json:"break_duration"`
	BreakStartMs    *int64  `json:"break_start"`
	PresentAtMs     *int64  `json:"present_at"`
	AbsentAtMs      *int64  `json:"absent_at"`
	HalfDay         bool    `json:"half_day"`
}

// ActiveBreakResponse is one row of the on-break board.
type ActiveBreakResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	RollcallID   string `json:"rollcall_id"`
	BreakStartMs int64  `json:"break_start"`
	DurationMs   int64  `json:"duration"`
}

// DayLogResponse is the per-employee drill-down for one day: the rollcall
// marks, the register opening time and every break interval.
type DayLogResponse struct {
	Employee struct {
		ID                  string `json:"id"`
		Name                string `json:"name"`
		ShiftStartMinutes   int    `json:"shift_start_minutes"`
		AllowedBreakMinutes int    `json:"allowed_break_minutes"`
	} `json:"employee"`
	Rollcall struct {
		ID          string `json:"id"`
		PresentAtMs *int64 `json:"present_at"`
		AbsentAtMs  *int64 `json:"absent_at"`
		HalfDay     bool   `json:"half_day"`
	} `json:"rollcall"`
	RegisterLog struct {
		ID         string `json:"id"`
		OpenedAtMs int64  `json:"opened_at"`
	} `json:"register_log"`
	Logs []BreakLogResponse `json:"logs"`
}

// NewDayLogResponse assembles the drill-down response from loaded rows.
func NewDayLogResponse(e employee.Employee, rc Rollcall, log register.Log, logs []BreakLog) DayLogResponse {
	var resp DayLogResponse

	resp.Employee.ID = e.ID
	resp.Employee.Name = e.Name
	resp.Employee.ShiftStartMinutes = e.ShiftStartMinutes
	resp.Employee.AllowedBreakMinutes = e.AllowedBreakMinutes

	resp.Rollcall.ID = rc.ID
	resp.Rollcall.PresentAtMs = msPtr(rc.PresentAt)
	resp.Rollcall.AbsentAtMs = msPtr(rc.AbsentAt)
	resp.Rollcall.HalfDay = rc.HalfDay

	resp.RegisterLog.ID = log.ID
	resp.RegisterLog.OpenedAtMs = log.OpenedAt.UnixMilli()

	resp.Logs = make([]BreakLogResponse, 0, len(logs))
	for _, b := range logs {
		resp.Logs = append(resp.Logs, NewBreakLogResponse(b))
	}
	return resp
}

func msPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}
