package report

import (
	"math"
	"time"

	"github.com/chandra447/dk-stores/internal/domain/employee"
	"github.com/chandra447/dk-stores/internal/domain/rollcall"
	"github.com/chandra447/dk-stores/internal/pkg/utils"
)

// workedSpan returns the interval an employee was on the floor for one
// rollcall: arrival to walk-out, or arrival to the scheduled shift end on the
// same client-local day when no walk-out was recorded. Zero when negative.
func workedSpan(rc *rollcall.Rollcall, e *employee.Employee, offsetMinutes int) time.Duration {
	if rc.PresentAt == nil {
		return 0
	}
	end := rc.AbsentAt
	if end == nil {
		shiftEnd := utils.ShiftEndOn(*rc.PresentAt, e.ShiftEndMinutes, offsetMinutes)
		end = &shiftEnd
	}
	span := end.Sub(*rc.PresentAt)
	if span < 0 {
		return 0
	}
	return span
}

// intensity is the worked share of the expected shift, clamped to [0, 1].
// The expected shift is the scheduled span minus the break allowance.
func intensity(rc *rollcall.Rollcall, e *employee.Employee, offsetMinutes int) float64 {
	if rc.PresentAt == nil {
		return 0
	}
	actual := workedSpan(rc, e, offsetMinutes)

	expected := time.Duration(e.ShiftMinutes()-e.AllowedBreakMinutes) * time.Minute
	if expected < time.Minute {
		expected = time.Minute
	}

	return math.Min(1, math.Max(0, float64(actual)/float64(expected)))
}

// round2 rounds hour figures the way the charts display them.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
