package user

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"   // Shop owner - owns registers, manages staff
	RoleManager Role = "manager" // Assigned employee - runs a single register
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user is a shop owner
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
