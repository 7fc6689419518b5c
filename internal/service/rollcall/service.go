package rollcall

import (
	"context"
	"fmt"
	"time"

	"github.com/chandra447/dk-stores/internal/domain/employee"
	"github.com/chandra447/dk-stores/internal/domain/register"
	"github.com/chandra447/dk-stores/internal/domain/rollcall"
	"github.com/chandra447/dk-stores/internal/pkg/database"
	"github.com/chandra447/dk-stores/internal/pkg/jwt"
	"github.com/chandra447/dk-stores/internal/pkg/validator"
	"github.com/chandra447/dk-stores/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type RollcallServiceImpl struct {
	db           *database.DB
	rollcallRepo rollcall.RollcallRepository
	breakRepo    rollcall.BreakLogRepository
	registerRepo register.RegisterRepository
	logRepo      register.LogRepository
	employeeRepo employee.EmployeeRepository
}

func NewRollcallService(
	db *database.DB,
	rollcallRepo rollcall.RollcallRepository,
	breakRepo rollcall.BreakLogRepository,
	registerRepo register.RegisterRepository,
	logRepo register.LogRepository,
	employeeRepo employee.EmployeeRepository,
) rollcall.RollcallService {
	return &RollcallServiceImpl{
		db:           db,
		rollcallRepo: rollcallRepo,
		breakRepo:    breakRepo,
		registerRepo: registerRepo,
		logRepo:      logRepo,
		employeeRepo: employeeRepo,
	}
}

// authorize resolves the register log and checks the caller may mark
// attendance under it.
func (s *RollcallServiceImpl) authorize(ctx context.Context, registerLogID string) (jwt.Identity, register.Log, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return jwt.Identity{}, register.Log{}, err
	}

	log, err := s.logRepo.GetByID(ctx, registerLogID)
	if err != nil {
		return jwt.Identity{}, register.Log{}, err
	}

	hasAccess, err := s.registerRepo.HasAccess(ctx, log.RegisterID, identity.UserID)
	if err != nil {
		return jwt.Identity{}, register.Log{}, fmt.Errorf("failed to check register access: %w", err)
	}
	if !hasAccess {
		return jwt.Identity{}, register.Log{}, register.ErrAccessDenied
	}
	return identity, log, nil
}

// MarkPresent implements rollcall.RollcallService. Idempotent: an employee
// already present keeps the original arrival time. One who walked out earlier
// re-enters with the absence cleared and a fresh arrival time.
func (s *RollcallServiceImpl) MarkPresent(ctx context.Context, req *rollcall.MarkRequest) (rollcall.RollcallResponse, error) {
	if err := req.Validate(); err != nil {
		return rollcall.RollcallResponse{}, err
	}
	identity, _, err := s.authorize(ctx, req.RegisterLogID)
	if err != nil {
		return rollcall.RollcallResponse{}, err
	}

	now := time.Now()

	rc, err := s.rollcallRepo.GetByEmployeeAndLog(ctx, req.EmployeeID, req.RegisterLogID)
	if err != nil {
		return rollcall.RollcallResponse{}, fmt.Errorf("failed to find rollcall: %w", err)
	}

	if rc == nil {
		presentAt := now
		created, err := s.rollcallRepo.Create(ctx, rollcall.Rollcall{
			RegisterLogID: req.RegisterLogID,
			EmployeeID:    req.EmployeeID,
			PresentAt:     &presentAt,
			CreatedBy:     identity.UserID,
		})
		if err != nil {
			return rollcall.RollcallResponse{}, fmt.Errorf("failed to create rollcall: %w", err)
		}
		return rollcall.NewRollcallResponse(created), nil
	}

	if rc.PresentAt != nil && rc.AbsentAt == nil {
		// Already present; nothing to change.
		return rollcall.NewRollcallResponse(*rc), nil
	}

	// Re-entry after a walk-out, or a first arrival on a pre-created row.
	// Either way the arrival clock restarts now.
	presentAt := now
	if err := s.rollcallRepo.MarkPresent(ctx, rc.ID, presentAt); err != nil {
		return rollcall.RollcallResponse{}, err
	}
	rc.PresentAt = &presentAt
	rc.AbsentAt = nil
	return rollcall.NewRollcallResponse(*rc), nil
}

// MarkAbsent implements rollcall.RollcallService. A break still running when
// the employee walks out is closed at the absence time.
func (s *RollcallServiceImpl) MarkAbsent(ctx context.Context, req *rollcall.MarkRequest) (rollcall.RollcallResponse, error) {
	if err := req.Validate(); err != nil {
		return rollcall.RollcallResponse{}, err
	}
	identity, _, err := s.authorize(ctx, req.RegisterLogID)
	if err != nil {
		return rollcall.RollcallResponse{}, err
	}

	now := time.Now()

	rc, err := s.rollcallRepo.GetByEmployeeAndLog(ctx, req.EmployeeID, req.RegisterLogID)
	if err != nil {
		return rollcall.RollcallResponse{}, fmt.Errorf("failed to find rollcall: %w", err)
	}

	if rc == nil {
		absentAt := now
		created, err := s.rollcallRepo.Create(ctx, rollcall.Rollcall{
			RegisterLogID: req.RegisterLogID,
			EmployeeID:    req.EmployeeID,
			AbsentAt:      &absentAt,
			CreatedBy:     identity.UserID,
		})
		if err != nil {
			return rollcall.RollcallResponse{}, fmt.Errorf("failed to create rollcall: %w", err)
		}
		return rollcall.NewRollcallResponse(created), nil
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.TxContext(ctx, tx)

		if err := s.breakRepo.CloseOpenForRollcall(txCtx, rc.ID, now); err != nil {
			return fmt.Errorf("failed to close open break: %w", err)
		}
		return s.rollcallRepo.MarkAbsent(txCtx, rc.ID, now)
	})
	if err != nil {
		return rollcall.RollcallResponse{}, err
	}

	rc.AbsentAt = &now
	return rollcall.NewRollcallResponse(*rc), nil
}

// ReturnFromAbsence implements rollcall.RollcallService. The time away is
// preserved as a closed break spanning the absence, and the absence mark is
// cleared.
func (s *RollcallServiceImpl) ReturnFromAbsence(ctx context.Context, req *rollcall.MarkRequest) (rollcall.RollcallResponse, error) {
	if err := req.Validate(); err != nil {
		return rollcall.RollcallResponse{}, err
	}
	identity, _, err := s.authorize(ctx, req.RegisterLogID)
	if err != nil {
		return rollcall.RollcallResponse{}, err
	}

	rc, err := s.rollcallRepo.GetByEmployeeAndLog(ctx, req.EmployeeID, req.RegisterLogID)
	if err != nil {
		return rollcall.RollcallResponse{}, fmt.Errorf("failed to find rollcall: %w", err)
	}
	if rc == nil {
		return rollcall.RollcallResponse{}, rollcall.ErrRollcallNotFound
	}
	if rc.AbsentAt == nil {
		return rollcall.RollcallResponse{}, rollcall.ErrNotAbsent
	}

	now := time.Now()
	absentAt := *rc.AbsentAt

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.TxContext(ctx, tx)

		if _, err := s.breakRepo.Create(txCtx, rollcall.BreakLog{
			RollcallID: rc.ID,
			EmployeeID: rc.EmployeeID,
			BreakStart: absentAt,
			BreakEnd:   &now,
			CreatedBy:  identity.UserID,
		}); err != nil {
			return fmt.Errorf("failed to record absence span: %w", err)
		}
		return s.rollcallRepo.ClearAbsent(txCtx, rc.ID)
	})
	if err != nil {
		return rollcall.RollcallResponse{}, err
	}

	rc.AbsentAt = nil
	return rollcall.NewRollcallResponse(*rc), nil
}

// StartBreak implements rollcall.RollcallService. The insert itself rejects a
// second open break, so concurrent starts cannot race past the check.
func (s *RollcallServiceImpl) StartBreak(ctx context.Context, req *rollcall.StartBreakRequest) (rollcall.BreakLogResponse, error) {
	if err := req.Validate(); err != nil {
		return rollcall.BreakLogResponse{}, err
	}

	rc, err := s.rollcallRepo.GetByID(ctx, req.RollcallID)
	if err != nil {
		return rollcall.BreakLogResponse{}, err
	}
	identity, _, err := s.authorize(ctx, rc.RegisterLogID)
	if err != nil {
		return rollcall.BreakLogResponse{}, err
	}

	created, err := s.breakRepo.CreateIfNoneOpen(ctx, rollcall.BreakLog{
		RollcallID: rc.ID,
		EmployeeID: rc.EmployeeID,
		BreakStart: time.Now(),
		CreatedBy:  identity.UserID,
	})
	if err != nil {
		return rollcall.BreakLogResponse{}, err
	}

	return rollcall.NewBreakLogResponse(created), nil
}

// EndBreak implements rollcall.RollcallService.
func (s *RollcallServiceImpl) EndBreak(ctx context.Context, breakID string) (rollcall.BreakLogResponse, error) {
	if !validator.IsValidUUID(breakID) {
		return rollcall.BreakLogResponse{}, rollcall.ErrBreakNotFound
	}

	b, err := s.breakRepo.GetByID(ctx, breakID)
	if err != nil {
		return rollcall.BreakLogResponse{}, err
	}

	rc, err := s.rollcallRepo.GetByID(ctx, b.RollcallID)
	if err != nil {
		return rollcall.BreakLogResponse{}, err
	}
	if _, _, err := s.authorize(ctx, rc.RegisterLogID); err != nil {
		return rollcall.BreakLogResponse{}, err
	}

	now := time.Now()
	if err := s.breakRepo.Close(ctx, b.ID, now); err != nil {
		return rollcall.BreakLogResponse{}, err
	}

	b.BreakEnd = &now
	return rollcall.NewBreakLogResponse(b), nil
}

// SetHalfDay implements rollcall.RollcallService.
func (s *RollcallServiceImpl) SetHalfDay(ctx context.Context, rollcallID string, halfDay bool) (rollcall.RollcallResponse, error) {
	if !validator.IsValidUUID(rollcallID) {
		return rollcall.RollcallResponse{}, rollcall.ErrRollcallNotFound
	}

	rc, err := s.rollcallRepo.GetByID(ctx, rollcallID)
	if err != nil {
		return rollcall.RollcallResponse{}, err
	}
	if _, _, err := s.authorize(ctx, rc.RegisterLogID); err != nil {
		return rollcall.RollcallResponse{}, err
	}

	if rc.HalfDay != halfDay {
		if err := s.rollcallRepo.SetHalfDay(ctx, rc.ID, halfDay); err != nil {
			return rollcall.RollcallResponse{}, err
		}
		rc.HalfDay = halfDay
	}

	return rollcall.NewRollcallResponse(rc), nil
}

// Status implements rollcall.RollcallService.
func (s *RollcallServiceImpl) Status(ctx context.Context, employeeID, registerLogID string) (rollcall.StatusResponse, error) {
	if !validator.IsValidUUID(employeeID) || !validator.IsValidUUID(registerLogID) {
		return rollcall.StatusResponse{}, rollcall.ErrRollcallNotFound
	}
	if _, _, err := s.authorize(ctx, registerLogID); err != nil {
		return rollcall.StatusResponse{}, err
	}

	rc, err := s.rollcallRepo.GetByEmployeeAndLog(ctx, employeeID, registerLogID)
	if err != nil {
		return rollcall.StatusResponse{}, fmt.Errorf("failed to find rollcall: %w", err)
	}

	resp := rollcall.StatusResponse{Status: string(rollcall.StatusNotMarked)}
	if rc == nil {
		return resp, nil
	}

	now := time.Now()
	logs, err := s.breakRepo.ListByRollcall(ctx, rc.ID)
	if err != nil {
		return rollcall.StatusResponse{}, fmt.Errorf("failed to list break logs: %w", err)
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

	return resp, nil
}

// ActiveBreaks implements rollcall.RollcallService.
func (s *RollcallServiceImpl) ActiveBreaks(ctx context.Context, registerLogID string) ([]rollcall.ActiveBreakResponse, error) {
	if !validator.IsValidUUID(registerLogID) {
		return nil, register.ErrLogNotFound
	}
	if _, _, err := s.authorize(ctx, registerLogID); err != nil {
		return nil, err
	}

	open, err := s.breakRepo.ListOpenByRegisterLog(ctx, registerLogID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open breaks: %w", err)
	}

	now := time.Now()
	responses := make([]rollcall.ActiveBreakResponse, 0, len(open))
	for _, row := range open {
		responses = append(responses, rollcall.ActiveBreakResponse{
			ID:           row.ID,
			EmployeeID:   row.EmployeeID,
			EmployeeName: row.EmployeeName,
			RollcallID:   row.RollcallID,
			BreakStartMs: row.BreakStart.UnixMilli(),
			DurationMs:   row.Duration(now).Milliseconds(),
		})
	}
	return responses, nil
}

// DayLog implements rollcall.RollcallService.
func (s *RollcallServiceImpl) DayLog(ctx context.Context, employeeID, registerLogID string) (rollcall.DayLogResponse, error) {
	if !validator.IsValidUUID(employeeID) || !validator.IsValidUUID(registerLogID) {
		return rollcall.DayLogResponse{}, rollcall.ErrRollcallNotFound
	}
	if _, _, err := s.authorize(ctx, registerLogID); err != nil {
		return rollcall.DayLogResponse{}, err
	}

	log, err := s.logRepo.GetByID(ctx, registerLogID)
	if err != nil {
		return rollcall.DayLogResponse{}, err
	}
	e, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return rollcall.DayLogResponse{}, err
	}

	rc, err := s.rollcallRepo.GetByEmployeeAndLog(ctx, employeeID, registerLogID)
	if err != nil {
		return rollcall.DayLogResponse{}, fmt.Errorf("failed to find rollcall: %w", err)
	}
	if rc == nil {
		return rollcall.DayLogResponse{}, rollcall.ErrRollcallNotFound
	}

	logs, err := s.breakRepo.ListByRollcall(ctx, rc.ID)
	if err != nil {
		return rollcall.DayLogResponse{}, fmt.Errorf("failed to list break logs: %w", err)
	}

	return rollcall.NewDayLogResponse(e, *rc, log, logs), nil
}
