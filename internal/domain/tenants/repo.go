package tenants

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, name, phone, email string) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("tenant name must not be empty")
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tenants (name, phone, email)
		VALUES ($1,$2,$3)
		RETURNING id, name, phone, email, created_at
	`, name, phone, email)

	var t Tenant
	if err := row.Scan(&t.ID, &t.Name, &t.Phone, &t.Email, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Tenant, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, phone, email, created_at
		FROM tenants
		WHERE id = $1
	`, id)
	var t Tenant
	if err := row.Scan(&t.ID, &t.Name, &t.Phone, &t.Email, &t.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *Repo) Update(ctx context.Context, id int64, name, phone, email string) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("tenant name must not be empty")
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE tenants SET name=$2, phone=$3, email=$4
		WHERE id=$1
		RETURNING id, name, phone, email, created_at
	`, id, name, phone, email)
	var t Tenant
	if err := row.Scan(&t.ID, &t.Name, &t.Phone, &t.Email, &t.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tenants WHERE id=$1`, id)
	return err
}

func (r *Repo) List(ctx context.Context) ([]Tenant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, phone, email, created_at
		FROM tenants
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Tenant
	for rows.Next() {
		var t Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.Phone, &t.Email, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// SearchByName matches on a case-insensitive name fragment or a phone prefix.
func (r *Repo) SearchByName(ctx context.Context, q string) ([]Tenant, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	like := "%" + strings.ToLower(q) + "%"
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, phone, email, created_at
		FROM tenants
		WHERE LOWER(name) LIKE $1 OR phone LIKE $1
		ORDER BY name
	`, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Tenant
	for rows.Next() {
		var t Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.Phone, &t.Email, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
