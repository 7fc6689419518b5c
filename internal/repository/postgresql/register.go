package postgresql

import (
	"context"

	"github.com/chandra447/dk-stores/internal/domain/register"
	"github.com/chandra447/dk-stores/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type registerRepositoryImpl struct {
	db *database.DB
}

func NewRegisterRepository(db *database.DB) register.RegisterRepository {
	return &registerRepositoryImpl{db: db}
}

const registerColumns = `id, name, address, avatar_seed, owner_id, is_active, created_at, updated_at`

func scanRegister(row pgx.Row) (register.Register, error) {
	var reg register.Register
	err := row.Scan(
		&reg.ID,
		&reg.Name,
		&reg.Address,
		&reg.AvatarSeed,
		&reg.OwnerID,
		&reg.IsActive,
		&reg.CreatedAt,
		&reg.UpdatedAt,
	)
	return reg, err
}

func (r *registerRepositoryImpl) Create(ctx context.Context, reg register.Register) (register.Register, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO registers (name, address, avatar_seed, owner_id, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + registerColumns

	return scanRegister(q.QueryRow(ctx, query, reg.Name, reg.Address, reg.AvatarSeed, reg.OwnerID, reg.IsActive))
}

func (r *registerRepositoryImpl) GetByID(ctx context.Context, id string) (register.Register, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + registerColumns + ` FROM registers WHERE id = $1`

	reg, err := scanRegister(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return register.Register{}, register.ErrRegisterNotFound
		}
		return register.Register{}, err
	}
	return reg, nil
}

func (r *registerRepositoryImpl) ListByOwner(ctx context.Context, ownerID string) ([]register.Register, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + registerColumns + `
		FROM registers
		WHERE owner_id = $1 AND is_active = TRUE
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var registers []register.Register
	for rows.Next() {
		reg, err := scanRegister(rows)
		if err != nil {
			return nil, err
		}
		registers = append(registers, reg)
	}
	return registers, rows.Err()
}

func (r *registerRepositoryImpl) HasAccess(ctx context.Context, registerID, userID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM registers
			WHERE id = $1 AND owner_id = $2
		) OR EXISTS (
			SELECT 1 FROM employees
			WHERE register_id = $1 AND user_id = $2
			  AND is_manager = TRUE AND is_active = TRUE
		)
	`

	var hasAccess bool
	if err := q.QueryRow(ctx, query, registerID, userID).Scan(&hasAccess); err != nil {
		return false, err
	}
	return hasAccess, nil
}
