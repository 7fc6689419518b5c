package report

import (
	"testing"
	"time"

	"github.com/chandra447/dk-stores/internal/domain/employee"
	"github.com/chandra447/dk-stores/internal/domain/rollcall"
	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time { return &t }

func testEmployee() *employee.Employee {
	return &employee.Employee{
		ShiftStartMinutes:   9 * 60,
		ShiftEndMinutes:     17 * 60,
		AllowedBreakMinutes: 60,
		RatePerDay:          800,
	}
}

func TestWorkedSpan_MarkedOut(t *testing.T) {
	e := testEmployee()
	present := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	rc := &rollcall.Rollcall{
		PresentAt: timePtr(present),
		AbsentAt:  timePtr(present.Add(7 * time.Hour)),
	}

	assert.Equal(t, 7*time.Hour, workedSpan(rc, e, 0))
}

func TestWorkedSpan_NoWalkOutUsesShiftEnd(t *testing.T) {
	e := testEmployee()
	// Arrived 09:30 UTC, never marked out. Shift ends 17:00 local, so the
	// span runs to 17:00 on the same day.
	present := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	rc := &rollcall.Rollcall{PresentAt: timePtr(present)}

	assert.Equal(t, 7*time.Hour+30*time.Minute, workedSpan(rc, e, 0))
}

func TestWorkedSpan_NeverPresent(t *testing.T) {
	e := testEmployee()
	rc := &rollcall.Rollcall{AbsentAt: timePtr(time.Now())}

	assert.Equal(t, time.Duration(0), workedSpan(rc, e, 0))
}

func TestWorkedSpan_ArrivalAfterShiftEndClampsToZero(t *testing.T) {
	e := testEmployee()
	// Arrived 18:00, after the 17:00 shift end, with no walk-out recorded.
	present := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	rc := &rollcall.Rollcall{PresentAt: timePtr(present)}

	assert.Equal(t, time.Duration(0), workedSpan(rc, e, 0))
}

func TestIntensity_FullShift(t *testing.T) {
	e := testEmployee()
	// Expected span is 8h shift minus 1h allowance. Exactly 7h worked is 1.0.
	present := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	rc := &rollcall.Rollcall{
		PresentAt: timePtr(present),
		AbsentAt:  timePtr(present.Add(7 * time.Hour)),
	}

	assert.InDelta(t, 1.0, intensity(rc, e, 0), 0.001)
}

func TestIntensity_HalfShift(t *testing.T) {
	e := testEmployee()
	present := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	rc := &rollcall.Rollcall{
		PresentAt: timePtr(present),
		AbsentAt:  timePtr(present.Add(3*time.Hour + 30*time.Minute)),
	}

	assert.InDelta(t, 0.5, intensity(rc, e, 0), 0.001)
}

func TestIntensity_ClampsToOne(t *testing.T) {
	e := testEmployee()
	// Worked past the expected span, stays capped at 1.
	present := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	rc := &rollcall.Rollcall{
		PresentAt: timePtr(present),
		AbsentAt:  timePtr(present.Add(11 * time.Hour)),
	}

	assert.Equal(t, 1.0, intensity(rc, e, 0))
}

func TestIntensity_NeverPresent(t *testing.T) {
	e := testEmployee()
	rc := &rollcall.Rollcall{}

	assert.Equal(t, 0.0, intensity(rc, e, 0))
}

func TestIntensity_ZeroLengthShift(t *testing.T) {
	e := testEmployee()
	e.ShiftStartMinutes = 9 * 60
	e.ShiftEndMinutes = 9 * 60
	e.AllowedBreakMinutes = 0
	// A degenerate schedule still divides by at least one minute.
	present := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	rc := &rollcall.Rollcall{
		PresentAt: timePtr(present),
		AbsentAt:  timePtr(present.Add(time.Hour)),
	}

	assert.Equal(t, 1.0, intensity(rc, e, 0))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 7.46, round2(7.4567))
	assert.Equal(t, 7.0, round2(7.0))
	assert.Equal(t, 0.33, round2(1.0/3.0))
}
