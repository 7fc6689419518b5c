package employee

import (
	"context"

	"github.com/chandra447/dk-stores/internal/domain/register"
)

type EmployeeService interface {
	// Create inserts the employee and, for managers, provisions the login
	// account in the same transaction: user row, login key and link. A
	// manager left pending by an earlier failure is finished by
	// ProvisionLogin.
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// CreateManager is the admin shortcut that provisions a manager with the
	// default schedule.
	CreateManager(ctx context.Context, req CreateManagerRequest) (EmployeeResponse, error)

	// ProvisionLogin retries account creation for a pending manager.
	// Idempotent: a linked manager returns the existing identity.
	ProvisionLogin(ctx context.Context, employeeID string) (ProvisionLoginResponse, error)

	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// Delete cascades: break logs, rollcalls, then the employee; the linked
	// login user is removed best-effort afterwards. Refused while the
	// employee is on shift today.
	Delete(ctx context.Context, employeeID string, day register.DayQuery) error

	List(ctx context.Context, registerID string) ([]EmployeeResponse, error)

	// ListWithStatus returns active employees with the derived attendance
	// state for the requested day window.
	ListWithStatus(ctx context.Context, registerID string, day register.DayQuery) ([]EmployeeStatusResponse, error)
}
