package postgresql

import (
	"context"
	"time"

	"github.com/chandra447/dk-stores/internal/domain/rollcall"
	"github.com/chandra447/dk-stores/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type rollcallRepositoryImpl struct {
	db *database.DB
}

func NewRollcallRepository(db *database.DB) rollcall.RollcallRepository {
	return &rollcallRepositoryImpl{db: db}
}

const rollcallColumns = `id, register_log_id, employee_id, present_at, absent_at, half_day,
		created_by, created_at, updated_at`

func scanRollcall(row pgx.Row) (rollcall.Rollcall, error) {
	var rc rollcall.Rollcall
	err := row.Scan(
		&rc.ID,
		&rc.RegisterLogID,
		&rc.EmployeeID,
		&rc.PresentAt,
		&rc.AbsentAt,
		&rc.HalfDay,
		&rc.CreatedBy,
		&rc.CreatedAt,
		&rc.UpdatedAt,
	)
	return rc, err
}

func (r *rollcallRepositoryImpl) Create(ctx context.Context, rc rollcall.Rollcall) (rollcall.Rollcall, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_rollcalls (register_log_id, employee_id, present_at, absent_at, half_day, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + rollcallColumns

	return scanRollcall(q.QueryRow(ctx, query,
		rc.RegisterLogID, rc.EmployeeID, rc.PresentAt, rc.AbsentAt, rc.HalfDay, rc.CreatedBy,
	))
}

func (r *rollcallRepositoryImpl) GetByID(ctx context.Context, id string) (rollcall.Rollcall, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + rollcallColumns + ` FROM employee_rollcalls WHERE id = $1`

	rc, err := scanRollcall(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return rollcall.Rollcall{}, rollcall.ErrRollcallNotFound
		}
		return rollcall.Rollcall{}, err
	}
	return rc, nil
}

func (r *rollcallRepositoryImpl) GetByEmployeeAndLog(ctx context.Context, employeeID, registerLogID string) (*rollcall.Rollcall, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + rollcallColumns + `
		FROM employee_rollcalls
		WHERE employee_id = $1 AND register_log_id = $2
	`

	rc, err := scanRollcall(q.QueryRow(ctx, query, employeeID, registerLogID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rc, nil
}

func (r *rollcallRepositoryImpl) ListByRegisterLog(ctx context.Context, registerLogID string) ([]rollcall.Rollcall, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + rollcallColumns + `
		FROM employee_rollcalls
		WHERE register_log_id = $1
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, registerLogID)
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

func (r *rollcallRepositoryImpl) MarkPresent(ctx context.Context, id string, presentAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employee_rollcalls
		SET present_at = $1, absent_at = NULL, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, presentAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return rollcall.ErrRollcallNotFound
	}
	return nil
}

func (r *rollcallRepositoryImpl) MarkAbsent(ctx context.Context, id string, absentAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employee_rollcalls
		SET absent_at = $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, absentAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return rollcall.ErrRollcallNotFound
	}
	return nil
}

func (r *rollcallRepositoryImpl) ClearAbsent(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employee_rollcalls
		SET absent_at = NULL, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return rollcall.ErrRollcallNotFound
	}
	return nil
}

func (r *rollcallRepositoryImpl) SetHalfDay(ctx context.Context, id string, halfDay bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employee_rollcalls
		SET half_day = $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, halfDay, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return rollcall.ErrRollcallNotFound
	}
	return nil
}

func (r *rollcallRepositoryImpl) DeleteByEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM employee_rollcalls WHERE employee_id = $1`, employeeID)
	return err
}
