package employee

import "time"

// LoginStatus tracks manager account provisioning. Regular employees stay at
// "none"; a manager is "pending" from row creation until the credential pair
// is registered and linked, then "linked". The pending state makes a partially
// provisioned manager visible and retryable instead of silently broken.
type LoginStatus string

const (
	LoginNone    LoginStatus = "none"
	LoginPending LoginStatus = "pending"
	LoginLinked  LoginStatus = "linked"
)

type Employee struct {
	ID                  string
	RegisterID          string
	Name                string
	ShiftStartMinutes   int // minutes from midnight
	ShiftEndMinutes     int // minutes from midnight, may be below start for overnight shifts
	AllowedBreakMinutes int
	RatePerDay          float64
	IsManager           bool
	UserID              *string
	PINHash             *string
	LoginKey            *string
	LoginStatus         LoginStatus
	IsActive            bool
	CreatedBy           string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ShiftMinutes returns the scheduled shift length in minutes, normalizing
// overnight shifts.
func (e *Employee) ShiftMinutes() int {
	d := e.ShiftEndMinutes - e.ShiftStartMinutes
	if d < 0 {
		d += 24 * 60
	}
	return d
}
