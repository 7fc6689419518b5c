package register

import "time"

// Register is a physical store location owned by one admin.
type Register struct {
	ID         string
	Name       string
	Address    *string
	AvatarSeed string
	OwnerID    string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Log records that the store opened for business on one day. At most one
// exists per register per business-day window.
type Log struct {
	ID         string
	RegisterID string
	OpenedAt   time.Time
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
