package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)

	// Delete removes a user row. Used by the employee cascade when a manager
	// login is torn down.
	Delete(ctx context.Context, id string) error
}
