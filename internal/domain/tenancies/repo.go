package tenancies

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUnitOccupied = errors.New("tenancies: unit already has an active tenancy")
	ErrNotActive    = errors.New("tenancies: tenancy is not active")
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Create opens a tenancy and flips the unit to occupied in one transaction.
// The in-tx check gives sequential callers a friendly ErrUnitOccupied; two
// racing creates can both pass it under READ COMMITTED, so the
// uq_tenancies_active_unit partial unique index is what actually keeps a
// second open tenancy off the unit. A violation of it maps back to
// ErrUnitOccupied.
func (r *Repo) Create(ctx context.Context, tenantID, unitID int64, startDate time.Time) (*Tenancy, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var busy bool
	if err := tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM tenancies
			WHERE unit_id = $1 AND status IN ('active','notice')
		)
	`, unitID).Scan(&busy); err != nil {
		return nil, err
	}
	if busy {
		return nil, ErrUnitOccupied
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO tenancies (tenant_id, unit_id, start_date, status)
		VALUES ($1,$2,$3,'active')
		RETURNING id, tenant_id, unit_id, start_date, end_date, status
	`, tenantID, unitID, startDate)

	var t Tenancy
	if err := row.Scan(&t.ID, &t.TenantID, &t.UnitID, &t.StartDate, &t.EndDate, &t.Status); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "uq_tenancies_active_unit" {
			return nil, ErrUnitOccupied
		}
		return nil, err
	}

	if _, err := tx.Exec(ctx, `UPDATE units SET status='occupied' WHERE id=$1`, unitID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &t, nil
}

// End closes the tenancy and vacates its unit in one transaction: status
// goes to ended, end_date is stamped with endDate, the unit goes back to
// vacant. Both writes commit or neither does.
func (r *Repo) End(ctx context.Context, id int64, endDate time.Time) (*Tenancy, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		UPDATE tenancies SET status='ended', end_date=$2
		WHERE id=$1 AND status IN ('active','notice')
		RETURNING id, tenant_id, unit_id, start_date, end_date, status
	`, id, endDate)

	var t Tenancy
	if err := row.Scan(&t.ID, &t.TenantID, &t.UnitID, &t.StartDate, &t.EndDate, &t.Status); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotActive
		}
		return nil, err
	}

	if _, err := tx.Exec(ctx, `UPDATE units SET status='vacant' WHERE id=$1`, t.UnitID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &t, nil
}

// GiveNotice marks an active tenancy as under notice; the unit stays
// occupied until End.
func (r *Repo) GiveNotice(ctx context.Context, id int64) (*Tenancy, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE tenancies SET status='notice'
		WHERE id=$1 AND status='active'
		RETURNING id, tenant_id, unit_id, start_date, end_date, status
	`, id)
	var t Tenancy
	if err := row.Scan(&t.ID, &t.TenantID, &t.UnitID, &t.StartDate, &t.EndDate, &t.Status); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotActive
		}
		return nil, err
	}
	return &t, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Tenancy, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT t.id, t.tenant_id, t.unit_id, t.start_date, t.end_date, t.status,
		       tn.name, u.unit_number, b.name, b.monthly_rent
		FROM tenancies t
		JOIN tenants tn ON tn.id = t.tenant_id
		JOIN units u ON u.id = t.unit_id
		JOIN blocks b ON b.id = u.block_id
		WHERE t.id = $1
	`, id)
	var t Tenancy
	if err := row.Scan(
		&t.ID, &t.TenantID, &t.UnitID, &t.StartDate, &t.EndDate, &t.Status,
		&t.TenantName, &t.UnitNumber, &t.BlockName, &t.MonthlyRent,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *Repo) List(ctx context.Context) ([]Tenancy, error) {
	return r.list(ctx, `
		SELECT t.id, t.tenant_id, t.unit_id, t.start_date, t.end_date, t.status,
		       tn.name, u.unit_number, b.name, b.monthly_rent
		FROM tenancies t
		JOIN tenants tn ON tn.id = t.tenant_id
		JOIN units u ON u.id = t.unit_id
		JOIN blocks b ON b.id = u.block_id
		ORDER BY t.start_date DESC, t.id DESC
	`)
}

// ListActive returns open tenancies with their governing block rent, which
// is what the ledger accrues against.
func (r *Repo) ListActive(ctx context.Context) ([]Tenancy, error) {
	return r.list(ctx, `
		SELECT t.id, t.tenant_id, t.unit_id, t.start_date, t.end_date, t.status,
		       tn.name, u.unit_number, b.name, b.monthly_rent
		FROM tenancies t
		JOIN tenants tn ON tn.id = t.tenant_id
		JOIN units u ON u.id = t.unit_id
		JOIN blocks b ON b.id = u.block_id
		WHERE t.status = 'active'
		ORDER BY b.name, u.unit_number
	`)
}

func (r *Repo) list(ctx context.Context, q string, args ...any) ([]Tenancy, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Tenancy
	for rows.Next() {
		var t Tenancy
		if err := rows.Scan(
			&t.ID, &t.TenantID, &t.UnitID, &t.StartDate, &t.EndDate, &t.Status,
			&t.TenantName, &t.UnitNumber, &t.BlockName, &t.MonthlyRent,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Delete removes the tenancy and its payments (cascade). If the tenancy was
// still open, its unit is vacated in the same transaction — otherwise the
// unit would stay occupied with no tenancy left to ever end it.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var unitID int64
	var status Status
	err = tx.QueryRow(ctx, `
		DELETE FROM tenancies WHERE id=$1
		RETURNING unit_id, status
	`, id).Scan(&unitID, &status)
	if err == pgx.ErrNoRows {
		return tx.Commit(ctx)
	}
	if err != nil {
		return err
	}

	if status == StatusActive || status == StatusNotice {
		if _, err := tx.Exec(ctx, `UPDATE units SET status='vacant' WHERE id=$1`, unitID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
