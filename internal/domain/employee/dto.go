package employee

import (
	"github.com/chandra447/dk-stores/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	RegisterID          string  `json:"-"`
	Name                string  `json:"name"`
	ShiftStartMinutes   int     `json:"shift_start_minutes"`
	ShiftEndMinutes     int     `json:"shift_end_minutes"`
	AllowedBreakMinutes int     `json:"allowed_break_minutes"`
	RatePerDay          float64 `json:"rate_per_day"`
	IsManager           bool    `json:"is_manager"`
	PIN                 *string `json:"pin,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if !validator.IsValidUUID(r.RegisterID) {
		errs = append(errs, validator.ValidationError{
			Field:   "register_id",
			Message: "register_id must be a valid id",
		})
	}
	if !validator.IsValidMinutesOfDay(r.ShiftStartMinutes) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_start_minutes",
			Message: "shift_start_minutes must be between 0 and 1439",
		})
	}
	if !validator.IsValidMinutesOfDay(r.ShiftEndMinutes) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_end_minutes",
			Message: "shift_end_minutes must be between 0 and 1439",
		})
	}
	if r.AllowedBreakMinutes < 0 || r.AllowedBreakMinutes >= 24*60 {
		errs = append(errs, validator.ValidationError{
			Field:   "allowed_break_minutes",
			Message: "allowed_break_minutes must be between 0 and 1439",
		})
	}
	if r.RatePerDay <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "rate_per_day",
			Message: "rate_per_day must be greater than zero",
		})
	}
	if r.IsManager {
		if r.PIN == nil || !validator.IsValidPIN(*r.PIN) {
			errs = append(errs, validator.ValidationError{
				Field:   "pin",
				Message: "a 4 digit pin is required for manager employees",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	EmployeeID          string  `json:"-"`
	Name                string  `json:"name"`
	ShiftStartMinutes   int     `json:"shift_start_minutes"`
	ShiftEndMinutes     int     `json:"shift_end_minutes"`
	AllowedBreakMinutes int     `json:"allowed_break_minutes"`
	RatePerDay          float64 `json:"rate_per_day"`
	IsManager           bool    `json:"is_manager"`
	PIN                 *string `json:"pin,omitempty"` // only to change it
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid id",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if !validator.IsValidMinutesOfDay(r.ShiftStartMinutes) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_start_minutes",
			Message: "shift_start_minutes must be between 0 and 1439",
		})
	}
	if !validator.IsValidMinutesOfDay(r.ShiftEndMinutes) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_end_minutes",
			Message: "shift_end_minutes must be between 0 and 1439",
		})
	}
	if r.RatePerDay <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "rate_per_day",
			Message: "rate_per_day must be greater than zero",
		})
	}
	if r.PIN != nil && !validator.IsValidPIN(*r.PIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin must be exactly 4 digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateManagerRequest provisions a manager with the stock schedule: a nine to
// five shift, an hour of break and the default manager day rate.
type CreateManagerRequest struct {
	RegisterID string `json:"-"`
	Name       string `json:"name"`
	PIN        string `json:"pin"`
}

func (r *CreateManagerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if !validator.IsValidUUID(r.RegisterID) {
		errs = append(errs, validator.ValidationError{
			Field:   "register_id",
			Message: "register_id must be a valid id",
		})
	}
	if !validator.IsValidPIN(r.PIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin must be exactly 4 digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	IsManager           bool    `json:"is_manager"`
	ShiftStartMinutes   int     `json:"shift_start_minutes"`
	ShiftEndMinutes     int     `json:"shift_end_minutes"`
	AllowedBreakMinutes int     `json:"allowed_break_minutes"`
	RatePerDay          float64 `json:"rate_per_day"`
	LoginStatus         string  `json:"login_status,omitempty"`
	CreatedAtMs         int64   `json:"created_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                  e.ID,
		Name:                e.Name,
		IsManager:           e.IsManager,
		ShiftStartMinutes:   e.ShiftStartMinutes,
		ShiftEndMinutes:     e.ShiftEndMinutes,
		AllowedBreakMinutes: e.AllowedBreakMinutes,
		RatePerDay:          e.RatePerDay,
		LoginStatus:         string(e.LoginStatus),
		CreatedAtMs:         e.CreatedAt.UnixMilli(),
	}
}

// EmployeeStatusResponse is an employee row annotated with the derived live
// attendance state for the requested day.
type EmployeeStatusResponse struct {
	EmployeeResponse
	Status          string  `json:"status"`
	RollcallID      *string `json:"rollcall_id"`
	CurrentBreakID  *string `json:"current_break_id"`
	BreakDurationMs *int64  `json:"break_duration"`
	BreakStartMs    *int64  `json:"break_start"`
	PresentAtMs     *int64  `json:"present_at"`
	AbsentAtMs      *int64  `json:"absent_at"`
	HalfDay         bool    `json:"half_day"`
}

// ProvisionLoginResponse reports the synthesized login identity for a manager.
type ProvisionLoginResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
