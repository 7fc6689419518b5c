package postgresql

import (
	"context"
	"time"

	"github.com/chandra447/dk-stores/internal/domain/register"
	"github.com/chandra447/dk-stores/internal/pkg/database"
	"github.com/chandra447/dk-stores/internal/pkg/utils"
	"github.com/jackc/pgx/v5"
)

type registerLogRepositoryImpl struct {
	db *database.DB
}

func NewRegisterLogRepository(db *database.DB) register.LogRepository {
	return &registerLogRepositoryImpl{db: db}
}

const registerLogColumns = `id, register_id, opened_at, created_by, created_at, updated_at`

func scanRegisterLog(row pgx.Row) (register.Log, error) {
	var l register.Log
	err := row.Scan(
		&l.ID,
		&l.RegisterID,
		&l.OpenedAt,
		&l.CreatedBy,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	return l, err
}

func (r *registerLogRepositoryImpl) Create(ctx context.Context, l register.Log) (register.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO register_logs (register_id, opened_at, created_by)
		VALUES ($1, $2, $3)
		RETURNING ` + registerLogColumns

	return scanRegisterLog(q.QueryRow(ctx, query, l.RegisterID, l.OpenedAt, l.CreatedBy))
}

func (r *registerLogRepositoryImpl) GetByID(ctx context.Context, id string) (register.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + registerLogColumns + ` FROM register_logs WHERE id = $1`

	l, err := scanRegisterLog(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return register.Log{}, register.ErrLogNotFound
		}
		return register.Log{}, err
	}
	return l, nil
}

func (r *registerLogRepositoryImpl) GetForWindow(ctx context.Context, registerID string, w utils.DayWindow) (*register.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + registerLogColumns + `
		FROM register_logs
		WHERE register_id = $1 AND opened_at >= $2 AND opened_at <= $3
		ORDER BY opened_at ASC
		LIMIT 1
	`

	l, err := scanRegisterLog(q.QueryRow(ctx, query, registerID, w.Start, w.End))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *registerLogRepositoryImpl) UpdateOpenedAt(ctx context.Context, id string, openedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE register_logs
		SET opened_at = $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, openedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return register.ErrLogNotFound
	}
	return nil
}
