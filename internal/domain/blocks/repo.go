package blocks

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

/* Blocks CRUD */

func (r *Repo) Create(ctx context.Context, name, address string, totalUnits int, monthlyRent float64) (*Block, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("block name must not be empty")
	}
	if monthlyRent <= 0 {
		return nil, fmt.Errorf("monthly rent must be > 0")
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO blocks (name, address, total_units, monthly_rent)
		VALUES ($1,$2,$3,$4)
		RETURNING id, name, address, total_units, monthly_rent, created_at
	`, name, address, totalUnits, monthlyRent)

	var b Block
	if err := row.Scan(&b.ID, &b.Name, &b.Address, &b.TotalUnits, &b.MonthlyRent, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Block, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, address, total_units, monthly_rent, created_at
		FROM blocks
		WHERE id = $1
	`, id)
	var b Block
	if err := row.Scan(&b.ID, &b.Name, &b.Address, &b.TotalUnits, &b.MonthlyRent, &b.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *Repo) Update(ctx context.Context, id int64, name, address string, totalUnits int, monthlyRent float64) (*Block, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("block name must not be empty")
	}
	if monthlyRent <= 0 {
		return nil, fmt.Errorf("monthly rent must be > 0")
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE blocks SET name=$2, address=$3, total_units=$4, monthly_rent=$5
		WHERE id=$1
		RETURNING id, name, address, total_units, monthly_rent, created_at
	`, id, name, address, totalUnits, monthlyRent)
	var b Block
	if err := row.Scan(&b.ID, &b.Name, &b.Address, &b.TotalUnits, &b.MonthlyRent, &b.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// Delete removes the block; units, tenancies and payments under it go with
// it via ON DELETE CASCADE.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM blocks WHERE id=$1`, id)
	return err
}

func (r *Repo) List(ctx context.Context) ([]Block, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, address, total_units, monthly_rent, created_at
		FROM blocks
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Block
	for rows.Next() {
		var b Block
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.TotalUnits, &b.MonthlyRent, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

/* Units */

func (r *Repo) CreateUnit(ctx context.Context, blockID int64, unitNumber string) (*Unit, error) {
	unitNumber = strings.TrimSpace(unitNumber)
	if unitNumber == "" {
		return nil, fmt.Errorf("unit number must not be empty")
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO units (block_id, unit_number)
		VALUES ($1,$2)
		RETURNING id, block_id, unit_number, status
	`, blockID, unitNumber)

	var u Unit
	if err := row.Scan(&u.ID, &u.BlockID, &u.UnitNumber, &u.Status); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) GetUnitByID(ctx context.Context, id int64) (*Unit, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT u.id, u.block_id, b.name, u.unit_number, u.status
		FROM units u
		JOIN blocks b ON b.id = u.block_id
		WHERE u.id = $1
	`, id)
	var u Unit
	if err := row.Scan(&u.ID, &u.BlockID, &u.BlockName, &u.UnitNumber, &u.Status); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) ListUnits(ctx context.Context) ([]Unit, error) {
	return r.listUnits(ctx, `
		SELECT u.id, u.block_id, b.name, u.unit_number, u.status
		FROM units u
		JOIN blocks b ON b.id = u.block_id
		ORDER BY b.name, u.unit_number
	`)
}

func (r *Repo) ListUnitsByBlock(ctx context.Context, blockID int64) ([]Unit, error) {
	return r.listUnits(ctx, `
		SELECT u.id, u.block_id, b.name, u.unit_number, u.status
		FROM units u
		JOIN blocks b ON b.id = u.block_id
		WHERE u.block_id = $1
		ORDER BY u.unit_number
	`, blockID)
}

// ListVacantUnits returns units currently available for a new tenancy.
func (r *Repo) ListVacantUnits(ctx context.Context) ([]Unit, error) {
	return r.listUnits(ctx, `
		SELECT u.id, u.block_id, b.name, u.unit_number, u.status
		FROM units u
		JOIN blocks b ON b.id = u.block_id
		WHERE u.status = 'vacant'
		ORDER BY b.name, u.unit_number
	`)
}

func (r *Repo) listUnits(ctx context.Context, q string, args ...any) ([]Unit, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Unit
	for rows.Next() {
		var u Unit
		if err := rows.Scan(&u.ID, &u.BlockID, &u.BlockName, &u.UnitNumber, &u.Status); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repo) SetUnitStatus(ctx context.Context, id int64, status UnitStatus) (*Unit, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE units SET status=$2 WHERE id=$1
		RETURNING id, block_id, unit_number, status
	`, id, string(status))
	var u Unit
	if err := row.Scan(&u.ID, &u.BlockID, &u.UnitNumber, &u.Status); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) DeleteUnit(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM units WHERE id=$1`, id)
	return err
}
