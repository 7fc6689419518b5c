package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	Update(ctx context.Context, e Employee) error
	Delete(ctx context.Context, id string) error

	ListActiveByRegister(ctx context.Context, registerID string) ([]Employee, error)

	// GetManagerByUser finds the active manager employee linked to a login
	// user, nil when the user manages nothing.
	GetManagerByUser(ctx context.Context, userID string) (*Employee, error)

	// GetManagerByLoginKey resolves a manager by the deterministic login key
	// stored at provisioning time, nil when no active manager matches.
	GetManagerByLoginKey(ctx context.Context, key string) (*Employee, error)

	// LinkLogin records the provisioned credential on the employee row and
	// flips login status to linked.
	LinkLogin(ctx context.Context, employeeID, userID, loginKey string) error
}
