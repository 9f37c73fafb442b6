package tenancies_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkandie/rentroll/internal/domain/blocks"
	"github.com/mkandie/rentroll/internal/domain/payments"
	"github.com/mkandie/rentroll/internal/domain/tenancies"
	"github.com/mkandie/rentroll/internal/domain/tenants"
)

// These tests need a real PostgreSQL. Point TEST_POSTGRES_DSN at a scratch
// database to run them; they migrate it and truncate all tables.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}

	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	require.NoError(t, err)
	require.NoError(t, goose.Up(sqlDB, "../../../migrations"))
	require.NoError(t, sqlDB.Close())

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE tenants, blocks, units, tenancies, payments RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}

type fixture struct {
	tenants   *tenants.Repo
	blocks    *blocks.Repo
	tenancies *tenancies.Repo
	payments  *payments.Repo

	tenant *tenants.Tenant
	block  *blocks.Block
	unit   *blocks.Unit
}

func newFixture(t *testing.T, pool *pgxpool.Pool) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{
		tenants:   tenants.NewRepo(pool),
		blocks:    blocks.NewRepo(pool),
		tenancies: tenancies.NewRepo(pool),
		payments:  payments.NewRepo(pool),
	}

	var err error
	f.tenant, err = f.tenants.Create(ctx, "Wanjiku Kamau", "+254700000001", "")
	require.NoError(t, err)
	f.block, err = f.blocks.Create(ctx, "A", "Ngong Road", 4, 8000)
	require.NoError(t, err)
	f.unit, err = f.blocks.CreateUnit(ctx, f.block.ID, "A1")
	require.NoError(t, err)
	return f
}

func startDate() time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func TestCreate_OccupiesUnitAndRejectsSecondTenancy(t *testing.T) {
	pool := testPool(t)
	f := newFixture(t, pool)
	ctx := context.Background()

	tn, err := f.tenancies.Create(ctx, f.tenant.ID, f.unit.ID, startDate())
	require.NoError(t, err)
	assert.Equal(t, tenancies.StatusActive, tn.Status)

	u, err := f.blocks.GetUnitByID(ctx, f.unit.ID)
	require.NoError(t, err)
	assert.Equal(t, blocks.UnitOccupied, u.Status)

	other, err := f.tenants.Create(ctx, "Otieno Odhiambo", "", "")
	require.NoError(t, err)
	_, err = f.tenancies.Create(ctx, other.ID, f.unit.ID, startDate())
	assert.ErrorIs(t, err, tenancies.ErrUnitOccupied)
}

// The store itself must hold the one-open-tenancy-per-unit line: a second
// active row slipped past the repo check (as two racing creates can) has to
// die on the partial unique index.
func TestCreate_StoreRejectsSecondActiveRow(t *testing.T) {
	pool := testPool(t)
	f := newFixture(t, pool)
	ctx := context.Background()

	_, err := f.tenancies.Create(ctx, f.tenant.ID, f.unit.ID, startDate())
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `
		INSERT INTO tenancies (tenant_id, unit_id, start_date, status)
		VALUES ($1,$2,$3,'active')
	`, f.tenant.ID, f.unit.ID, startDate())
	require.Error(t, err)

	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "23505", pgErr.Code)
	assert.Equal(t, "uq_tenancies_active_unit", pgErr.ConstraintName)
}

func TestEnd_BothWritesCommitTogether(t *testing.T) {
	pool := testPool(t)
	f := newFixture(t, pool)
	ctx := context.Background()

	tn, err := f.tenancies.Create(ctx, f.tenant.ID, f.unit.ID, startDate())
	require.NoError(t, err)

	endDate := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)
	ended, err := f.tenancies.End(ctx, tn.ID, endDate)
	require.NoError(t, err)

	assert.Equal(t, tenancies.StatusEnded, ended.Status)
	if assert.NotNil(t, ended.EndDate) {
		assert.Equal(t, "2024-05-03", ended.EndDate.Format(time.DateOnly))
	}

	u, err := f.blocks.GetUnitByID(ctx, f.unit.ID)
	require.NoError(t, err)
	assert.Equal(t, blocks.UnitVacant, u.Status)

	_, err = f.tenancies.End(ctx, tn.ID, endDate)
	assert.ErrorIs(t, err, tenancies.ErrNotActive)
}

func TestDelete_OpenTenancyVacatesUnit(t *testing.T) {
	pool := testPool(t)
	f := newFixture(t, pool)
	ctx := context.Background()

	tn, err := f.tenancies.Create(ctx, f.tenant.ID, f.unit.ID, startDate())
	require.NoError(t, err)

	require.NoError(t, f.tenancies.Delete(ctx, tn.ID))

	gone, err := f.tenancies.GetByID(ctx, tn.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	u, err := f.blocks.GetUnitByID(ctx, f.unit.ID)
	require.NoError(t, err)
	assert.Equal(t, blocks.UnitVacant, u.Status)
}

func TestBlockDelete_CascadesToUnitsTenanciesPayments(t *testing.T) {
	pool := testPool(t)
	f := newFixture(t, pool)
	ctx := context.Background()

	tn, err := f.tenancies.Create(ctx, f.tenant.ID, f.unit.ID, startDate())
	require.NoError(t, err)
	_, err = f.payments.Create(ctx, tn.ID, 8000, startDate(), "2024-01", "mpesa", "")
	require.NoError(t, err)

	require.NoError(t, f.blocks.Delete(ctx, f.block.ID))

	for _, table := range []string{"units", "tenancies", "payments"} {
		var n int
		require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n))
		assert.Zero(t, n, "%s should be empty after block delete", table)
	}

	// The tenant is untouched; only the block's subtree goes.
	var n int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM tenants`).Scan(&n))
	assert.Equal(t, 1, n)
}
