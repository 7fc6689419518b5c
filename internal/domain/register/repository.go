package register

import (
	"context"
	"time"

	"github.com/chandra447/dk-stores/internal/pkg/utils"
)

type RegisterRepository interface {
	Create(ctx context.Context, r Register) (Register, error)
	GetByID(ctx context.Context, id string) (Register, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Register, error)

	// HasAccess reports whether userID is the register owner or an active
	// manager employee assigned to it. This is the single authorization rule
	// for register-scoped operations.
	HasAccess(ctx context.Context, registerID, userID string) (bool, error)
}

type LogRepository interface {
	Create(ctx context.Context, l Log) (Log, error)
	GetByID(ctx context.Context, id string) (Log, error)

	// GetForWindow finds the register's log whose opening time falls inside
	// the business-day window, nil when the register has not been opened.
	GetForWindow(ctx context.Context, registerID string, w utils.DayWindow) (*Log, error)

	// UpdateOpenedAt corrects the opening timestamp of an existing log.
	UpdateOpenedAt(ctx context.Context, id string, openedAt time.Time) error
}
