package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkandie/rentroll/internal/domain/monthkey"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, tenancyID int64, amount float64, date time.Time, forMonth, method, notes string) (*Payment, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("payment amount must be > 0")
	}
	if !monthkey.Valid(forMonth) {
		return nil, fmt.Errorf("invalid month key %q: want YYYY-MM", forMonth)
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO payments (tenancy_id, amount, payment_date, payment_for_month, payment_method, notes)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, tenancy_id, amount, payment_date, payment_for_month, payment_method, notes
	`, tenancyID, amount, date, forMonth, method, notes)

	var p Payment
	if err := row.Scan(&p.ID, &p.TenancyID, &p.Amount, &p.Date, &p.ForMonth, &p.Method, &p.Notes); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Payment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, tenancy_id, amount, payment_date, payment_for_month, payment_method, notes
		FROM payments
		WHERE id = $1
	`, id)
	var p Payment
	if err := row.Scan(&p.ID, &p.TenancyID, &p.Amount, &p.Date, &p.ForMonth, &p.Method, &p.Notes); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repo) Update(ctx context.Context, id int64, amount float64, date time.Time, forMonth, method, notes string) (*Payment, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("payment amount must be > 0")
	}
	if !monthkey.Valid(forMonth) {
		return nil, fmt.Errorf("invalid month key %q: want YYYY-MM", forMonth)
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE payments SET amount=$2, payment_date=$3, payment_for_month=$4, payment_method=$5, notes=$6
		WHERE id=$1
		RETURNING id, tenancy_id, amount, payment_date, payment_for_month, payment_method, notes
	`, id, amount, date, forMonth, method, notes)
	var p Payment
	if err := row.Scan(&p.ID, &p.TenancyID, &p.Amount, &p.Date, &p.ForMonth, &p.Method, &p.Notes); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM payments WHERE id=$1`, id)
	return err
}

const listQuery = `
	SELECT p.id, p.tenancy_id, p.amount, p.payment_date, p.payment_for_month, p.payment_method, p.notes,
	       tn.name, b.name || ' / ' || u.unit_number
	FROM payments p
	JOIN tenancies t ON t.id = p.tenancy_id
	JOIN tenants tn ON tn.id = t.tenant_id
	JOIN units u ON u.id = t.unit_id
	JOIN blocks b ON b.id = u.block_id
`

func (r *Repo) List(ctx context.Context) ([]Payment, error) {
	return r.list(ctx, listQuery+` ORDER BY p.payment_date DESC, p.id DESC`)
}

func (r *Repo) ListByTenancy(ctx context.Context, tenancyID int64) ([]Payment, error) {
	return r.list(ctx, listQuery+` WHERE p.tenancy_id = $1 ORDER BY p.payment_date, p.id`, tenancyID)
}

func (r *Repo) ListByMonth(ctx context.Context, forMonth string) ([]Payment, error) {
	return r.list(ctx, listQuery+` WHERE p.payment_for_month = $1 ORDER BY p.payment_date, p.id`, forMonth)
}

func (r *Repo) list(ctx context.Context, q string, args ...any) ([]Payment, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(
			&p.ID, &p.TenancyID, &p.Amount, &p.Date, &p.ForMonth, &p.Method, &p.Notes,
			&p.TenantName, &p.UnitLabel,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
