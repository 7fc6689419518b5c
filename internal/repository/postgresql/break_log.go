package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/chandra447/dk-stores/internal/domain/rollcall"
	"github.com/chandra447/dk-stores/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type breakLogRepositoryImpl struct {
	db *database.DB
}

func NewBreakLogRepository(db *database.DB) rollcall.BreakLogRepository {
	return &breakLogRepositoryImpl{db: db}
}

const breakLogColumns = `id, rollcall_id, employee_id, break_start, break_end,
		created_by, created_at, updated_at`

func scanBreakLog(row pgx.Row) (rollcall.BreakLog, error) {
	var b rollcall.BreakLog
	err := row.Scan(
		&b.ID,
		&b.RollcallID,
		&b.EmployeeID,
		&b.BreakStart,
		&b.BreakEnd,
		&b.CreatedBy,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

func (r *breakLogRepositoryImpl) CreateIfNoneOpen(ctx context.Context, b rollcall.BreakLog) (rollcall.BreakLog, error) {
	q := GetQuerier(ctx, r.db)

	// The WHERE NOT EXISTS guard and the insert run as one statement, so two
	// concurrent starts cannot both see "no open break".
	query := `
		INSERT INTO attendance_logs (rollcall_id, employee_id, break_start, break_end, created_by)
		SELECT $1, $2, $3, $4, $5
		WHERE NOT EXISTS (
			SELECT 1 FROM attendance_logs
			WHERE rollcall_id = $1 AND break_end IS NULL
		)
		RETURNING ` + breakLogColumns

	created, err := scanBreakLog(q.QueryRow(ctx, query,
		b.RollcallID, b.EmployeeID, b.BreakStart, b.BreakEnd, b.CreatedBy,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return rollcall.BreakLog{}, rollcall.ErrBreakOpen
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// The partial unique index on open breaks fired.
			return rollcall.BreakLog{}, rollcall.ErrBreakOpen
		}
		return rollcall.BreakLog{}, err
	}
	return created, nil
}

func (r *breakLogRepositoryImpl) Create(ctx context.Context, b rollcall.BreakLog) (rollcall.BreakLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_logs (rollcall_id, employee_id, break_start, break_end, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + breakLogColumns

	return scanBreakLog(q.QueryRow(ctx, query,
		b.RollcallID, b.EmployeeID, b.BreakStart, b.BreakEnd, b.CreatedBy,
	))
}

func (r *breakLogRepositoryImpl) GetByID(ctx context.Context, id string) (rollcall.BreakLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + breakLogColumns + ` FROM attendance_logs WHERE id = $1`

	b, err := scanBreakLog(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return rollcall.BreakLog{}, rollcall.ErrBreakNotFound
		}
		return rollcall.BreakLog{}, err
	}
	return b, nil
}

func (r *breakLogRepositoryImpl) Close(ctx context.Context, id string, endedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_logs
		SET break_end = $1, updated_at = NOW()
		WHERE id = $2 AND break_end IS NULL
	`

	tag, err := q.Exec(ctx, query, endedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing break from one that already ended.
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM attendance_logs WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return rollcall.ErrBreakClosed
		}
		return rollcall.ErrBreakNotFound
	}
	return nil
}

func (r *breakLogRepositoryImpl) CloseOpenForRollcall(ctx context.Context, rollcallID string, endedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_logs
		SET break_end = $1, updated_at = NOW()
		WHERE rollcall_id = $2 AND break_end IS NULL
	`

	_, err := q.Exec(ctx, query, endedAt, rollcallID)
	return err
}

func (r *breakLogRepositoryImpl) ListByRollcall(ctx context.Context, rollcallID string) ([]rollcall.BreakLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + breakLogColumns + `
		FROM attendance_logs
		WHERE rollcall_id = $1
		ORDER BY break_start ASC
	`

	rows, err := q.Query(ctx, query, rollcallID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []rollcall.BreakLog
	for rows.Next() {
		b, err := scanBreakLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, b)
	}
	return logs, rows.Err()
}

func (r *breakLogRepositoryImpl) ListOpenByRegisterLog(ctx context.Context, registerLogID string) ([]rollcall.OpenBreakRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT al.id, al.rollcall_id, al.employee_id, al.break_start, al.break_end,
			al.created_by, al.created_at, al.updated_at, e.name
		FROM attendance_logs al
		JOIN employee_rollcalls rc ON rc.id = al.rollcall_id
		JOIN employees e ON e.id = al.employee_id
		WHERE rc.register_log_id = $1 AND al.break_end IS NULL
		ORDER BY al.break_start DESC
	`

	rows, err := q.Query(ctx, query, registerLogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var open []rollcall.OpenBreakRow
	for rows.Next() {
		var row rollcall.OpenBreakRow
		err := rows.Scan(
			&row.ID,
			&row.RollcallID,
			&row.EmployeeID,
			&row.BreakStart,
			&row.BreakEnd,
			&row.CreatedBy,
			&row.CreatedAt,
			&row.UpdatedAt,
			&row.EmployeeName,
		)
		if err != nil {
			return nil, err
		}
		open = append(open, row)
	}
	return open, rows.Err()
}

func (r *breakLogRepositoryImpl) DeleteByEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM attendance_logs WHERE employee_id = $1`, employeeID)
	return err
}
