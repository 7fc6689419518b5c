package postgresql

import (
	"context"
	"errors"

	"github.com/chandra447/dk-stores/internal/domain/employee"
	"github.com/chandra447/dk-stores/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, register_id, name, shift_start_minutes, shift_end_minutes,
		allowed_break_minutes, rate_per_day, is_manager, user_id, pin_hash,
		login_key, login_status, is_active, created_by, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.RegisterID,
		&e.Name,
		&e.ShiftStartMinutes,
		&e.ShiftEndMinutes,
		&e.AllowedBreakMinutes,
		&e.RatePerDay,
		&e.IsManager,
		&e.UserID,
		&e.PINHash,
		&e.LoginKey,
		&e.LoginStatus,
		&e.IsActive,
		&e.CreatedBy,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (register_id, name, shift_start_minutes, shift_end_minutes,
			allowed_break_minutes, rate_per_day, is_manager, user_id, pin_hash,
			login_key, login_status, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		e.RegisterID, e.Name, e.ShiftStartMinutes, e.ShiftEndMinutes,
		e.AllowedBreakMinutes, e.RatePerDay, e.IsManager, e.UserID, e.PINHash,
		e.LoginKey, e.LoginStatus, e.IsActive, e.CreatedBy,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on login_key
			return employee.Employee{}, employee.ErrLoginKeyTaken
		}
		return employee.Employee{}, err
	}
	return created, nil
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET name = $1, shift_start_minutes = $2, shift_end_minutes = $3,
			allowed_break_minutes = $4, rate_per_day = $5, is_manager = $6,
			pin_hash = $7, login_key = $8, login_status = $9, is_active = $10,
			updated_at = NOW()
		WHERE id = $11
	`

	tag, err := q.Exec(ctx, query,
		e.Name, e.ShiftStartMinutes, e.ShiftEndMinutes,
		e.AllowedBreakMinutes, e.RatePerDay, e.IsManager,
		e.PINHash, e.LoginKey, e.LoginStatus, e.IsActive,
		e.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.ErrLoginKeyTaken
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) ListActiveByRegister(ctx context.Context, registerID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE register_id = $1 AND is_active = TRUE
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, registerID)
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

func (r *employeeRepositoryImpl) GetManagerByUser(ctx context.Context, userID string) (*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE user_id = $1 AND is_manager = TRUE AND is_active = TRUE
		ORDER BY created_at ASC
		LIMIT 1
	`

	e, err := scanEmployee(q.QueryRow(ctx, query, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *employeeRepositoryImpl) GetManagerByLoginKey(ctx context.Context, key string) (*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE login_key = $1 AND is_manager = TRUE AND is_active = TRUE
	`

	e, err := scanEmployee(q.QueryRow(ctx, query, key))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *employeeRepositoryImpl) LinkLogin(ctx context.Context, employeeID, userID, loginKey string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET user_id = $1, login_key = $2, login_status = 'linked', updated_at = NOW()
		WHERE id = $3
	`

	tag, err := q.Exec(ctx, query, userID, loginKey, employeeID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.ErrLoginKeyTaken
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
