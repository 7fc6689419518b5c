package register

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/chandra447/dk-stores/internal/domain/employee"
	"github.com/chandra447/dk-stores/internal/domain/register"
	"github.com/chandra447/dk-stores/internal/domain/rollcall"
	"github.com/chandra447/dk-stores/internal/domain/user"
	"github.com/chandra447/dk-stores/internal/pkg/database"
	"github.com/chandra447/dk-stores/internal/pkg/jwt"
	"github.com/chandra447/dk-stores/internal/pkg/utils"
	"github.com/chandra447/dk-stores/internal/pkg/validator"
	"github.com/chandra447/dk-stores/internal/repository/postgresql"
)

type RegisterServiceImpl struct {
	db           *database.DB
	registerRepo register.RegisterRepository
	logRepo      register.LogRepository
	employeeRepo employee.EmployeeRepository
	rollcallRepo rollcall.RollcallRepository
	breakRepo    rollcall.BreakLogRepository
}

func NewRegisterService(
	db *database.DB,
	registerRepo register.RegisterRepository,
	logRepo register.LogRepository,
	employeeRepo employee.EmployeeRepository,
	rollcallRepo rollcall.RollcallRepository,
	breakRepo rollcall.BreakLogRepository,
) register.RegisterService {
	return &RegisterServiceImpl{
		db:           db,
		registerRepo: registerRepo,
		logRepo:      logRepo,
		employeeRepo: employeeRepo,
		rollcallRepo: rollcallRepo,
		breakRepo:    breakRepo,
	}
}

// Create implements register.RegisterService. Owner-only.
func (s *RegisterServiceImpl) Create(ctx context.Context, req register.CreateRegisterRequest) (register.RegisterResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return register.RegisterResponse{}, err
	}
	if identity.Role != user.RoleAdmin {
		return register.RegisterResponse{}, user.ErrAdminPrivilegeRequired
	}

	if err := req.Validate(); err != nil {
		return register.RegisterResponse{}, err
	}

	created, err := s.registerRepo.Create(ctx, register.Register{
		Name:       req.Name,
		Address:    req.Address,
		AvatarSeed: utils.RandomAvatarSeed(),
		OwnerID:    identity.UserID,
		IsActive:   true,
	})
	if err != nil {
		return register.RegisterResponse{}, fmt.Errorf("failed to create register: %w", err)
	}

	return register.NewRegisterResponse(created), nil
}

// Get implements register.RegisterService.
func (s *RegisterServiceImpl) Get(ctx context.Context, registerID string) (register.RegisterResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return register.RegisterResponse{}, err
	}
	if !validator.IsValidUUID(registerID) {
		return register.RegisterResponse{}, register.ErrRegisterNotFound
	}

	hasAccess, err := s.registerRepo.HasAccess(ctx, registerID, identity.UserID)
	if err != nil {
		return register.RegisterResponse{}, fmt.Errorf("failed to check register access: %w", err)
	}
	if !hasAccess {
		return register.RegisterResponse{}, register.ErrAccessDenied
	}

	reg, err := s.registerRepo.GetByID(ctx, registerID)
	if err != nil {
		return register.RegisterResponse{}, err
	}

	return register.NewRegisterResponse(reg), nil
}

// ListMine implements register.RegisterService. Admins get the registers they
// own; a manager gets the single register they run, annotated with their own
// break usage for the day.
func (s *RegisterServiceImpl) ListMine(ctx context.Context, day register.DayQuery) ([]register.RegisterResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if identity.Role == user.RoleAdmin {
		registers, err := s.registerRepo.ListByOwner(ctx, identity.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to list registers: %w", err)
		}

		responses := make([]register.RegisterResponse, 0, len(registers))
		for _, reg := range registers {
			responses = append(responses, register.NewRegisterResponse(reg))
		}
		return responses, nil
	}

	managed, err := s.employeeRepo.GetManagerByUser(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve managed register: %w", err)
	}
	if managed == nil {
		return []register.RegisterResponse{}, nil
	}

	reg, err := s.registerRepo.GetByID(ctx, managed.RegisterID)
	if err != nil {
		return nil, err
	}

	resp := register.NewRegisterResponse(reg)
	info, err := s.managerBreakInfo(ctx, managed, day)
	if err != nil {
		return nil, err
	}
	resp.BreakTimeInfo = info

	return []register.RegisterResponse{resp}, nil
}

// managerBreakInfo computes the manager's used break minutes for the day
// window, nil when the register has not been opened today.
func (s *RegisterServiceImpl) managerBreakInfo(ctx context.Context, managed *employee.Employee, day register.DayQuery) (*register.BreakTimeInfo, error) {
	now := time.Now()
	window := day.Window(now)

	log, err := s.logRepo.GetForWindow(ctx, managed.RegisterID, window)
	if err != nil {
		return nil, fmt.Errorf("failed to find register log: %w", err)
	}
	info := &register.BreakTimeInfo{AllowedMinutes: managed.AllowedBreakMinutes}
	if log == nil {
		return info, nil
	}

	rc, err := s.rollcallRepo.GetByEmployeeAndLog(ctx, managed.ID, log.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find rollcall: %w", err)
	}
	if rc == nil {
		return info, nil
	}

	logs, err := s.breakRepo.ListByRollcall(ctx, rc.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list break logs: %w", err)
	}

	info.UsedMinutes = int(rollcall.TotalBreak(logs, now) / time.Minute)
	return info, nil
}

// Open implements register.RegisterService. Opening is idempotent per day
// window; a second call returns the existing log, correcting its timestamp
// only when a differing explicit opening time is supplied.
func (s *RegisterServiceImpl) Open(ctx context.Context, req register.OpenRegisterRequest) (register.LogResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return register.LogResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return register.LogResponse{}, err
	}

	hasAccess, err := s.registerRepo.HasAccess(ctx, req.RegisterID, identity.UserID)
	if err != nil {
		return register.LogResponse{}, fmt.Errorf("failed to check register access: %w", err)
	}
	if !hasAccess {
		return register.LogResponse{}, register.ErrAccessDenied
	}

	now := time.Now()
	window := req.Window(now)

	openedAt := now
	if req.OpeningTimeMs != nil {
		openedAt = time.UnixMilli(*req.OpeningTimeMs).UTC()
	}

	var result register.Log
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.TxContext(ctx, tx)

		existing, err := s.logRepo.GetForWindow(txCtx, req.RegisterID, window)
		if err != nil {
			return fmt.Errorf("failed to find register log: %w", err)
		}
		if existing != nil {
			if req.OpeningTimeMs != nil && !existing.OpenedAt.Equal(openedAt) {
				if err := s.logRepo.UpdateOpenedAt(txCtx, existing.ID, openedAt); err != nil {
					return fmt.Errorf("failed to update opening time: %w", err)
				}
				existing.OpenedAt = openedAt
			}
			result = *existing
			return nil
		}

		created, err := s.logRepo.Create(txCtx, register.Log{
			RegisterID: req.RegisterID,
			OpenedAt:   openedAt,
			CreatedBy:  identity.UserID,
		})
		if err != nil {
			return fmt.Errorf("failed to create register log: %w", err)
		}
		result = created
		return nil
	})
	if err != nil {
		return register.LogResponse{}, err
	}

	return register.NewLogResponse(result), nil
}

// TodayLog implements register.RegisterService.
func (s *RegisterServiceImpl) TodayLog(ctx context.Context, registerID string, day register.DayQuery) (register.LogResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return register.LogResponse{}, err
	}
	if !validator.IsValidUUID(registerID) {
		return register.LogResponse{}, register.ErrRegisterNotFound
	}

	hasAccess, err := s.registerRepo.HasAccess(ctx, registerID, identity.UserID)
	if err != nil {
		return register.LogResponse{}, fmt.Errorf("failed to check register access: %w", err)
	}
	if !hasAccess {
		return register.LogResponse{}, register.ErrAccessDenied
	}

	log, err := s.logRepo.GetForWindow(ctx, registerID, day.Window(time.Now()))
	if err != nil {
		return register.LogResponse{}, fmt.Errorf("failed to find register log: %w", err)
	}
	if log == nil {
		return register.LogResponse{}, register.ErrLogNotFound
	}

	return register.NewLogResponse(*log), nil
}
