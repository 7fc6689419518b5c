package employee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chandra447/dk-stores/internal/domain/employee"
	"github.com/chandra447/dk-stores/internal/domain/register"
	"github.com/chandra447/dk-stores/internal/domain/rollcall"
	"github.com/chandra447/dk-stores/internal/domain/user"
	"github.com/chandra447/dk-stores/internal/pkg/database"
	"github.com/chandra447/dk-stores/internal/pkg/jwt"
	"github.com/chandra447/dk-stores/internal/pkg/utils"
	"github.com/chandra447/dk-stores/internal/pkg/validator"
	"github.com/chandra447/dk-stores/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// Stock schedule applied when a manager is provisioned without an explicit
// shift: nine to five, an hour of break, the default manager day rate.
const (
	defaultManagerShiftStart = 9 * 60
	defaultManagerShiftEnd   = 17 * 60
	defaultManagerBreak      = 60
	defaultManagerRate       = 800
)

type EmployeeServiceImpl struct {
	db           *database.DB
	employeeRepo employee.EmployeeRepository
	registerRepo register.RegisterRepository
	logRepo      register.LogRepository
	rollcallRepo rollcall.RollcallRepository
	breakRepo    rollcall.BreakLogRepository
	userRepo     user.UserRepository
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	registerRepo register.RegisterRepository,
	logRepo register.LogRepository,
	rollcallRepo rollcall.RollcallRepository,
	breakRepo rollcall.BreakLogRepository,
	userRepo user.UserRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
		registerRepo: registerRepo,
		logRepo:      logRepo,
		rollcallRepo: rollcallRepo,
		breakRepo:    breakRepo,
		userRepo:     userRepo,
	}
}

// requireOwner loads the register and checks the caller owns it. Staffing
// changes are owner-only; managers only mark attendance.
func (s *EmployeeServiceImpl) requireOwner(ctx context.Context, registerID string) (jwt.Identity, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return jwt.Identity{}, err
	}

	reg, err := s.registerRepo.GetByID(ctx, registerID)
	if err != nil {
		return jwt.Identity{}, err
	}
	if reg.OwnerID != identity.UserID {
		return jwt.Identity{}, employee.ErrNotRegisterOwner
	}
	return identity, nil
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	identity, err := s.requireOwner(ctx, req.RegisterID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	e := employee.Employee{
		RegisterID:          req.RegisterID,
		Name:                req.Name,
		ShiftStartMinutes:   req.ShiftStartMinutes,
		ShiftEndMinutes:     req.ShiftEndMinutes,
		AllowedBreakMinutes: req.AllowedBreakMinutes,
		RatePerDay:          req.RatePerDay,
		IsManager:           req.IsManager,
		LoginStatus:         employee.LoginNone,
		IsActive:            true,
		CreatedBy:           identity.UserID,
	}

	if !req.IsManager {
		created, err := s.employeeRepo.Create(ctx, e)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		return employee.NewEmployeeResponse(created), nil
	}

	pinHash, err := bcrypt.GenerateFromPassword([]byte(*req.PIN), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash pin: %w", err)
	}
	hashed := string(pinHash)
	e.PINHash = &hashed
	key := utils.NormalizeLoginKey(req.Name)
	e.LoginKey = &key
	e.LoginStatus = employee.LoginPending

	// Employee row, login user and link land in one transaction so a manager
	// can never exist half provisioned without being visibly pending.
	var created employee.Employee
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.TxContext(ctx, tx)

		created, err = s.employeeRepo.Create(txCtx, e)
		if err != nil {
			return err
		}
		return s.linkLoginAccount(txCtx, &created)
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(created), nil
}

// linkLoginAccount registers the synthesized credential pair for a manager
// and links it. Must run inside a transaction alongside the employee write.
func (s *EmployeeServiceImpl) linkLoginAccount(ctx context.Context, e *employee.Employee) error {
	email := utils.ManagerEmail(e.Name, e.ID)

	account, err := s.userRepo.Create(ctx, user.User{
		Name:  e.Name,
		Email: email,
		Role:  user.RoleManager,
	})
	if err != nil {
		return fmt.Errorf("failed to create manager account: %w", err)
	}

	if err := s.employeeRepo.LinkLogin(ctx, e.ID, account.ID, *e.LoginKey); err != nil {
		return err
	}
	e.UserID = &account.ID
	e.LoginStatus = employee.LoginLinked
	return nil
}

// CreateManager implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateManager(ctx context.Context, req employee.CreateManagerRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	pin := req.PIN
	return s.Create(ctx, employee.CreateEmployeeRequest{
		RegisterID:          req.RegisterID,
		Name:                req.Name,
		ShiftStartMinutes:   defaultManagerShiftStart,
		ShiftEndMinutes:     defaultManagerShiftEnd,
		AllowedBreakMinutes: defaultManagerBreak,
		RatePerDay:          defaultManagerRate,
		IsManager:           true,
		PIN:                 &pin,
	})
}

// ProvisionLogin implements employee.EmployeeService. Finishes account setup
// for a manager stuck in the pending state; already linked managers get their
// existing identity back.
func (s *EmployeeServiceImpl) ProvisionLogin(ctx context.Context, employeeID string) (employee.ProvisionLoginResponse, error) {
	if !validator.IsValidUUID(employeeID) {
		return employee.ProvisionLoginResponse{}, employee.ErrEmployeeNotFound
	}

	e, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return employee.ProvisionLoginResponse{}, err
	}
	if _, err := s.requireOwner(ctx, e.RegisterID); err != nil {
		return employee.ProvisionLoginResponse{}, err
	}
	if !e.IsManager {
		return employee.ProvisionLoginResponse{}, employee.ErrNotManager
	}

	if e.LoginStatus == employee.LoginLinked && e.UserID != nil {
		account, err := s.userRepo.GetByID(ctx, *e.UserID)
		if err != nil {
			return employee.ProvisionLoginResponse{}, err
		}
		return employee.ProvisionLoginResponse{UserID: account.ID, Email: account.Email}, nil
	}

	if e.LoginKey == nil {
		key := utils.NormalizeLoginKey(e.Name)
		e.LoginKey = &key
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		return s.linkLoginAccount(postgresql.TxContext(ctx, tx), &e)
	})
	if err != nil {
		return employee.ProvisionLoginResponse{}, err
	}

	return employee.ProvisionLoginResponse{
		UserID: *e.UserID,
		Email:  utils.ManagerEmail(e.Name, e.ID),
	}, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if _, err := s.requireOwner(ctx, e.RegisterID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	becomingManager := req.IsManager && !e.IsManager
	if becomingManager && req.PIN == nil && e.PINHash == nil {
		return employee.EmployeeResponse{}, employee.ErrPINRequired
	}

	e.Name = req.Name
	e.ShiftStartMinutes = req.ShiftStartMinutes
	e.ShiftEndMinutes = req.ShiftEndMinutes
	e.AllowedBreakMinutes = req.AllowedBreakMinutes
	e.RatePerDay = req.RatePerDay
	e.IsManager = req.IsManager

	switch {
	case !req.IsManager:
		// Demotion wipes the stored PIN; promoting again takes a fresh one.
		e.PINHash = nil
	case req.PIN != nil:
		pinHash, err := bcrypt.GenerateFromPassword([]byte(*req.PIN), bcrypt.DefaultCost)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to hash pin: %w", err)
		}
		hashed := string(pinHash)
		e.PINHash = &hashed
	}

	// Keep the login key in step with the display name so the manager keeps
	// signing in with what they see on screen.
	if e.IsManager && e.LoginStatus != employee.LoginNone {
		key := utils.NormalizeLoginKey(e.Name)
		e.LoginKey = &key
	}

	if err := s.employeeRepo.Update(ctx, e); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(e), nil
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, employeeID string, day register.DayQuery) error {
	if !validator.IsValidUUID(employeeID) {
		return employee.ErrEmployeeNotFound
	}

	e, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if _, err := s.requireOwner(ctx, e.RegisterID); err != nil {
		return err
	}

	onShift, err := s.isOnShift(ctx, &e, day)
	if err != nil {
		return err
	}
	if onShift {
		return employee.ErrEmployeeOnShift
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.TxContext(ctx, tx)

		if err := s.breakRepo.DeleteByEmployee(txCtx, e.ID); err != nil {
			return fmt.Errorf("failed to delete break logs: %w", err)
		}
		if err := s.rollcallRepo.DeleteByEmployee(txCtx, e.ID); err != nil {
			return fmt.Errorf("failed to delete rollcalls: %w", err)
		}
		return s.employeeRepo.Delete(txCtx, e.ID)
	})
	if err != nil {
		return err
	}

	// The login account is removed best effort; an orphaned user row cannot
	// sign in once the employee link is gone.
	if e.UserID != nil {
		if err := s.userRepo.Delete(ctx, *e.UserID); err != nil {
			slog.Warn("failed to delete linked login account",
				"employee_id", e.ID, "user_id", *e.UserID, "error", err)
		}
	}

	return nil
}

// isOnShift reports whether the employee is marked present today without a
// closing absence.
func (s *EmployeeServiceImpl) isOnShift(ctx context.Context, e *employee.Employee, day register.DayQuery) (bool, error) {
	log, err := s.logRepo.GetForWindow(ctx, e.RegisterID, day.Window(time.Now()))
	if err != nil {
		return false, fmt.Errorf("failed to find register log: %w", err)
	}
	if log == nil {
		return false, nil
	}

	rc, err := s.rollcallRepo.GetByEmployeeAndLog(ctx, e.ID, log.ID)
	if err != nil {
		return false, fmt.Errorf("failed to find rollcall: %w", err)
	}
	return rc != nil && rc.PresentAt != nil && rc.AbsentAt == nil, nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, registerID string) ([]employee.EmployeeResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !validator.IsValidUUID(registerID) {
		return nil, register.ErrRegisterNotFound
	}

	hasAccess, err := s.registerRepo.HasAccess(ctx, registerID, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check register access: %w", err)
	}
	if !hasAccess {
		return nil, register.ErrAccessDenied
	}

	employees, err := s.employeeRepo.ListActiveByRegister(ctx, registerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.NewEmployeeResponse(e))
	}
	return responses, nil
}

// ListWithStatus implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListWithStatus(ctx context.Context, registerID string, day register.DayQuery) ([]employee.EmployeeStatusResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !validator.IsValidUUID(registerID) {
		return nil, register.ErrRegisterNotFound
	}

	hasAccess, err := s.registerRepo.HasAccess(ctx, registerID, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check register access: %w", err)
	}
	if !hasAccess {
		return nil, register.ErrAccessDenied
	}

	employees, err := s.employeeRepo.ListActiveByRegister(ctx, registerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	now := time.Now()
	log, err := s.logRepo.GetForWindow(ctx, registerID, day.Window(now))
	if err != nil {
		return nil, fmt.Errorf("failed to find register log: %w", err)
	}

	responses := make([]employee.EmployeeStatusResponse, 0, len(employees))

	if log == nil {
		for _, e := range employees {
			responses = append(responses, employee.EmployeeStatusResponse{
				EmployeeResponse: employee.NewEmployeeResponse(e),
				Status:           string(rollcall.StatusRegisterNotStarted),
			})
		}
		return responses, nil
	}

	rollcalls, err := s.rollcallRepo.ListByRegisterLog(ctx, log.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rollcalls: %w", err)
	}
	byEmployee := make(map[string]*rollcall.Rollcall, len(rollcalls))
	for i := range rollcalls {
		byEmployee[rollcalls[i].EmployeeID] = &rollcalls[i]
	}

	for _, e := range employees {
		resp := employee.EmployeeStatusResponse{
			EmployeeResponse: employee.NewEmployeeResponse(e),
			Status:           string(rollcall.StatusNotMarked),
		}

		rc := byEmployee[e.ID]
		if rc != nil {
			logs, err := s.breakRepo.ListByRollcall(ctx, rc.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to list break logs: %w", err)
			}
			open := rollcall.OpenBreak(logs)

			resp.Status = string(rollcall.DeriveStatus(rc, open))
			resp.RollcallID = &rc.ID
			resp.HalfDay = rc.HalfDay
			if rc.PresentAt != nil {
				ms := rc.PresentAt.UnixMilli()
				resp.PresentAtMs = &ms
			}
			if rc.AbsentAt != nil {
				ms := rc.AbsentAt.UnixMilli()
				resp.AbsentAtMs = &ms
			}
			if len(logs) > 0 {
				used := rollcall.TotalBreak(logs, now).Milliseconds()
				resp.BreakDurationMs = &used
			}
			if open != nil {
				resp.CurrentBreakID = &open.ID
				ms := open.BreakStart.UnixMilli()
				resp.BreakStartMs = &ms
			}
		}

		responses = append(responses, resp)
	}

	return responses, nil
}
