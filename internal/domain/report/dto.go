package report

import (
	"time"

	"github.com/chandra447/dk-stores/internal/pkg/validator"
)

// RangeQuery scopes a report to a time span and optionally to one register
// or one employee. From and To are Unix milliseconds as sent by the client;
// TzOffsetMinutes follows the JavaScript getTimezoneOffset convention,
// positive when the client is behind UTC.
type RangeQuery struct {
	RegisterID      *string `json:"register_id"`
	EmployeeID      *string `json:"employee_id"`
	FromMs          int64   `json:"from"`
	ToMs            int64   `json:"to"`
	TzOffsetMinutes *int    `json:"tz_offset_minutes"`
}

func (q *RangeQuery) Validate() error {
	var errs validator.ValidationErrors

	if q.FromMs <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be a unix millisecond timestamp",
		})
	}
	if q.ToMs <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be a unix millisecond timestamp",
		})
	}
	if q.FromMs > 0 && q.ToMs > 0 && q.ToMs < q.FromMs {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must not be before from",
		})
	}
	if q.RegisterID != nil && !validator.IsValidUUID(*q.RegisterID) {
		errs = append(errs, validator.ValidationError{
			Field:   "register_id",
			Message: "register_id must be a valid id",
		})
	}
	if q.EmployeeID != nil && !validator.IsValidUUID(*q.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid id",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Window converts the client range into UTC bounds.
func (q *RangeQuery) Window() (time.Time, time.Time) {
	offset := time.Duration(q.Offset()) * time.Minute
	from := time.UnixMilli(q.FromMs).Add(-offset).UTC()
	to := time.UnixMilli(q.ToMs).Add(-offset).UTC()
	return from, to
}

func (q *RangeQuery) Offset() int {
	if q.TzOffsetMinutes == nil {
		return 0
	}
	return *q.TzOffsetMinutes
}

type BreakCompliance struct {
	TotalAllowedMinutes int  `json:"total_allowed_minutes"`
	TotalUsedMinutes    int  `json:"total_used_minutes"`
	Compliant           bool `json:"compliant"`
}

type WageDetails struct {
	FullDayWage     float64         `json:"full_day_wage"`
	HalfDayWage     float64         `json:"half_day_wage"`
	TotalWage       float64         `json:"total_wage"`
	BreakCompliance BreakCompliance `json:"break_time_compliance"`
}

type DashboardStats struct {
	RegisterDays        int         `json:"register_days"`
	PresentDays         int         `json:"present_days"`
	HalfDays            int         `json:"half_days"`
	TotalHours          float64     `json:"total_hours"`
	TotalBreakMinutes   int         `json:"total_break_minutes"`
	AllowedBreakMinutes int         `json:"allowed_break_minutes"`
	WageDetails         WageDetails `json:"wage_details"`
}

// ContributionDay is one cell of the attendance heatmap. Intensity is the
// worked share of the expected shift, clamped to [0, 1]; Count is 1 for a
// present day and 0 for an absence.
type ContributionDay struct {
	Date          string  `json:"date"`
	Count         int     `json:"count"`
	Intensity     float64 `json:"intensity"`
	RegisterLogID string  `json:"register_log_id"`
	EmployeeID    string  `json:"employee_id"`
	RollcallID    string  `json:"rollcall_id"`
	HalfDay       bool    `json:"half_day"`
}

// HourlyBucket is one bar of the work-versus-break chart, keyed by the
// client-local calendar date. Durations are hours rounded to two decimals.
type HourlyBucket struct {
	Date          string  `json:"date"`
	WorkDuration  float64 `json:"work_duration"`
	BreakDuration float64 `json:"break_duration"`
	TotalHours    float64 `json:"total_hours"`
}
