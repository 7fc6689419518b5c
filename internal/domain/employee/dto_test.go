package employee

import (
	"testing"

	"github.com/chandra447/dk-stores/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
)

const testRegisterID = "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"

func validCreateRequest() CreateEmployeeRequest {
	return CreateEmployeeRequest{
		RegisterID:          testRegisterID,
		Name:                "Ravi Kumar",
		ShiftStartMinutes:   9 * 60,
		ShiftEndMinutes:     17 * 60,
		AllowedBreakMinutes: 60,
		RatePerDay:          800,
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var errs validator.ValidationErrors
	assert.ErrorAs(t, err, &errs)
	return errs.ToMap()
}

func TestCreateEmployeeRequest_Validate(t *testing.T) {
	req := validCreateRequest()
	assert.NoError(t, req.Validate())

	req = validCreateRequest()
	req.Name = " "
	assert.Contains(t, fieldsOf(t, req.Validate()), "name")

	req = validCreateRequest()
	req.RegisterID = "bogus"
	assert.Contains(t, fieldsOf(t, req.Validate()), "register_id")

	req = validCreateRequest()
	req.ShiftStartMinutes = 1440
	assert.Contains(t, fieldsOf(t, req.Validate()), "shift_start_minutes")

	req = validCreateRequest()
	req.ShiftEndMinutes = -1
	assert.Contains(t, fieldsOf(t, req.Validate()), "shift_end_minutes")

	req = validCreateRequest()
	req.RatePerDay = 0
	assert.Contains(t, fieldsOf(t, req.Validate()), "rate_per_day")
}

func TestCreateEmployeeRequest_ManagerNeedsPIN(t *testing.T) {
	req := validCreateRequest()
	req.IsManager = true
	assert.Contains(t, fieldsOf(t, req.Validate()), "pin")

	badPin := "12ab"
	req.PIN = &badPin
	assert.Contains(t, fieldsOf(t, req.Validate()), "pin")

	pin := "1234"
	req.PIN = &pin
	assert.NoError(t, req.Validate())
}

func TestCreateEmployeeRequest_OvernightShiftAllowed(t *testing.T) {
	// End before start is a valid overnight schedule, not an error.
	req := validCreateRequest()
	req.ShiftStartMinutes = 22 * 60
	req.ShiftEndMinutes = 6 * 60
	assert.NoError(t, req.Validate())
}

func TestUpdateEmployeeRequest_Validate(t *testing.T) {
	req := UpdateEmployeeRequest{
		EmployeeID:          testRegisterID,
		Name:                "Ravi Kumar",
		ShiftStartMinutes:   10 * 60,
		ShiftEndMinutes:     18 * 60,
		AllowedBreakMinutes: 45,
		RatePerDay:          900,
	}
	assert.NoError(t, req.Validate())

	// PIN is optional on update but must be well formed when present.
	shortPin := "12"
	req.PIN = &shortPin
	assert.Contains(t, fieldsOf(t, req.Validate()), "pin")
}

func TestCreateManagerRequest_Validate(t *testing.T) {
	req := CreateManagerRequest{
		RegisterID: testRegisterID,
		Name:       "Priya Sharma",
		PIN:        "4321",
	}
	assert.NoError(t, req.Validate())

	req.PIN = "43210"
	assert.Contains(t, fieldsOf(t, req.Validate()), "pin")
}

func TestEmployee_ShiftMinutes(t *testing.T) {
	e := Employee{ShiftStartMinutes: 9 * 60, ShiftEndMinutes: 17 * 60}
	assert.Equal(t, 8*60, e.ShiftMinutes())

	// Overnight wraps past midnight.
	e = Employee{ShiftStartMinutes: 22 * 60, ShiftEndMinutes: 6 * 60}
	assert.Equal(t, 8*60, e.ShiftMinutes())
}
