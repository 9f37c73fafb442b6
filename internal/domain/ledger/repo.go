package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkandie/rentroll/internal/domain/blocks"
	"github.com/mkandie/rentroll/internal/domain/payments"
	"github.com/mkandie/rentroll/internal/domain/tenancies"
	"github.com/mkandie/rentroll/internal/domain/tenants"
)

// Repo assembles ledger snapshots out of the domain repositories. Any
// failed read aborts the whole snapshot: the dashboard shows complete
// numbers or none.
type Repo struct {
	tenants   *tenants.Repo
	blocks    *blocks.Repo
	tenancies *tenancies.Repo
	payments  *payments.Repo
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{
		tenants:   tenants.NewRepo(pool),
		blocks:    blocks.NewRepo(pool),
		tenancies: tenancies.NewRepo(pool),
		payments:  payments.NewRepo(pool),
	}
}

func (r *Repo) Snapshot(ctx context.Context) (Snapshot, error) {
	var s Snapshot
	var err error

	if s.Tenants, err = r.tenants.List(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("load tenants: %w", err)
	}
	if s.Blocks, err = r.blocks.List(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("load blocks: %w", err)
	}
	if s.Units, err = r.blocks.ListUnits(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("load units: %w", err)
	}
	if s.Tenancies, err = r.tenancies.List(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("load tenancies: %w", err)
	}
	if s.Payments, err = r.payments.List(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("load payments: %w", err)
	}
	return s, nil
}
