package postgresql

import (
	"context"
	"time"

	"github.com/chandra447/dk-stores/internal/domain/employee"
	"github.com/chandra447/dk-stores/internal/domain/report"
	"github.com/chandra447/dk-stores/internal/domain/rollcall"
	"github.com/chandra447/dk-stores/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

func (r *reportRepositoryImpl) AccessibleRegisterIDs(ctx context.Context, userID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id FROM registers
		WHERE owner_id = $1 AND is_active = TRUE
		UNION
		SELECT e.register_id
		FROM employees e
		JOIN registers r ON r.id = e.register_id
		WHERE e.user_id = $1 AND e.is_manager = TRUE AND e.is_active = TRUE
		  AND r.is_active = TRUE
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *reportRepositoryImpl) CountRegisterLogs(ctx context.Context, registerIDs []string, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM register_logs
		WHERE register_id = ANY($1) AND opened_at >= $2 AND opened_at <= $3
	`

	var count int
	if err := q.QueryRow(ctx, query, registerIDs, from, to).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *reportRepositoryImpl) ListRollcalls(ctx context.Context, registerIDs []string, employeeID *string, from, to time.Time) ([]rollcall.Rollcall, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT rc.id, rc.register_log_id, rc.employee_id, rc.present_at, rc.absent_at,
			rc.half_day, rc.created_by, rc.created_at, rc.updated_at
		FROM employee_rollcalls rc
		JOIN register_logs rl ON rl.id = rc.register_log_id
		WHERE rl.register_id = ANY($1)
		  AND rc.created_at >= $2 AND rc.created_at <= $3
		  AND ($4::uuid IS NULL OR rc.employee_id = $4)
		ORDER BY rc.created_at ASC
	`

	rows, err := q.Query(ctx, query, registerIDs, from, to, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rollcalls []rollcall.Rollcall
	for rows.Next() {
		rc, err := scanRollcall(rows)
		if err != nil {
			return nil, err
		}
		rollcalls = append(rollcalls, rc)
	}
	return rollcalls, rows.Err()
}

func (r *reportRepositoryImpl) MapBreaks(ctx context.Context, rollcallIDs []string) (map[string][]rollcall.BreakLog, error) {
	breaks := make(map[string][]rollcall.BreakLog)
	if len(rollcallIDs) == 0 {
		return breaks, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + breakLogColumns + `
		FROM attendance_logs
		WHERE rollcall_id = ANY($1)
		ORDER BY break_start ASC
	`

	rows, err := q.Query(ctx, query, rollcallIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		b, err := scanBreakLog(rows)
		if err != nil {
			return nil, err
		}
		breaks[b.RollcallID] = append(breaks[b.RollcallID], b)
	}
	return breaks, rows.Err()
}

func (r *reportRepositoryImpl) ListEmployees(ctx context.Context, registerIDs []string, employeeID *string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE register_id = ANY($1) AND is_active = TRUE
		  AND ($2::uuid IS NULL OR id = $2)
	`

	rows, err := q.Query(ctx, query, registerIDs, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *reportRepositoryImpl) FindRollcallInRange(ctx context.Context, employeeID string, from, to time.Time) (*rollcall.Rollcall, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + rollcallColumns + `
		FROM employee_rollcalls
		WHERE employee_id = $1 AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at ASC
		LIMIT 1
	`

	rc, err := scanRollcall(q.QueryRow(ctx, query, employeeID, from, to))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rc, nil
}
