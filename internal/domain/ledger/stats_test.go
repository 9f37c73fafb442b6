package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mkandie/rentroll/internal/domain/blocks"
	"github.com/mkandie/rentroll/internal/domain/monthkey"
	"github.com/mkandie/rentroll/internal/domain/payments"
	"github.com/mkandie/rentroll/internal/domain/tenancies"
	"github.com/mkandie/rentroll/internal/domain/tenants"
)

// fixtureSnapshot: two blocks, three units, two active tenancies plus one
// ended, payments spread over several billing months.
func fixtureSnapshot() Snapshot {
	return Snapshot{
		Tenants: []tenants.Tenant{
			{ID: 1, Name: "Wanjiku Kamau"},
			{ID: 2, Name: "Otieno Odhiambo"},
			{ID: 3, Name: "Amina Hassan"},
		},
		Blocks: []blocks.Block{
			{ID: 1, Name: "A", MonthlyRent: 8000},
			{ID: 2, Name: "B", MonthlyRent: 12000},
		},
		Units: []blocks.Unit{
			{ID: 1, BlockID: 1, UnitNumber: "A1", Status: blocks.UnitOccupied},
			{ID: 2, BlockID: 1, UnitNumber: "A2", Status: blocks.UnitVacant},
			{ID: 3, BlockID: 2, UnitNumber: "B1", Status: blocks.UnitOccupied},
			{ID: 4, BlockID: 2, UnitNumber: "B2", Status: blocks.UnitMaintenance},
		},
		Tenancies: []tenancies.Tenancy{
			{ID: 1, TenantID: 1, UnitID: 1, StartDate: date(2024, 1, 1),
				Status: tenancies.StatusActive, MonthlyRent: 8000, TenantName: "Wanjiku Kamau", BlockName: "A", UnitNumber: "A1"},
			{ID: 2, TenantID: 2, UnitID: 3, StartDate: date(2024, 3, 10),
				Status: tenancies.StatusActive, MonthlyRent: 12000, TenantName: "Otieno Odhiambo", BlockName: "B", UnitNumber: "B1"},
			{ID: 3, TenantID: 3, UnitID: 2, StartDate: date(2023, 6, 1),
				Status: tenancies.StatusEnded, MonthlyRent: 8000, TenantName: "Amina Hassan", BlockName: "A", UnitNumber: "A2"},
		},
		Payments: []payments.Payment{
			pay(1, 8000, "2024-01"),
			pay(1, 8000, "2024-02"),
			pay(1, 8000, "2024-03"),
			pay(2, 12000, "2024-03"),
			pay(2, 12000, "2024-04"),
			pay(2, 20000, "2024-05"),
			pay(3, 5000, "2023-06"), // against the ended tenancy
		},
	}
}

func TestComputeStatistics_Counts(t *testing.T) {
	st := ComputeStatistics(fixtureSnapshot(), date(2024, 5, 3))

	assert.Equal(t, 3, st.TotalTenants)
	assert.Equal(t, 2, st.TotalBlocks)
	assert.Equal(t, 4, st.TotalUnits)

	assert.Equal(t, 2, st.OccupiedUnits)
	assert.Equal(t, 1, st.VacantUnits)
	assert.Equal(t, 1, st.MaintenanceUnits)

	assert.Equal(t, 2, st.ActiveTenancies)
	assert.Equal(t, 1, st.EndedTenancies)
	assert.Equal(t, 0, st.NoticeTenancies)
}

func TestComputeStatistics_Money(t *testing.T) {
	now := date(2024, 5, 3)
	st := ComputeStatistics(fixtureSnapshot(), now)

	// All payments, any status, any period.
	assert.Equal(t, 73000.0, st.CollectedAllTime)
	// Only the 2024-05 attribution.
	assert.Equal(t, 20000.0, st.CollectedThisMonth)
	// 8000 + 12000 across the two active tenancies.
	assert.Equal(t, 20000.0, st.ExpectedThisMonth)
	// Tenancy 1: due 5*8000, paid 24000 => 16000 short.
	// Tenancy 2: started 2024-03-10, now 2024-05-03 => 2 months due = 24000,
	// paid 44000 => in credit; credit is not netted against tenancy 1.
	assert.Equal(t, 16000.0, st.OutstandingAllTime)
}

func TestComputeStatistics_CollectedPartitionsByMonthKey(t *testing.T) {
	snap := fixtureSnapshot()
	now := date(2024, 5, 3)
	st := ComputeStatistics(snap, now)

	var otherMonths float64
	for _, p := range snap.Payments {
		if p.ForMonth != monthkey.For(now) {
			otherMonths += p.Amount
		}
	}
	assert.Equal(t, st.CollectedAllTime, st.CollectedThisMonth+otherMonths)
}

func TestComputeStatistics_Idempotent(t *testing.T) {
	snap := fixtureSnapshot()
	now := date(2024, 5, 3)

	first := ComputeStatistics(snap, now)
	second := ComputeStatistics(snap, now)

	assert.Equal(t, first, second)
}

func TestComputeStatistics_EmptySnapshot(t *testing.T) {
	st := ComputeStatistics(Snapshot{}, date(2024, 5, 3))
	assert.Equal(t, Statistics{}, st)
}

func TestComputeArrears(t *testing.T) {
	now := date(2024, 5, 3)
	arrears := ComputeArrears(fixtureSnapshot(), now)

	if assert.Len(t, arrears, 1) {
		assert.Equal(t, int64(1), arrears[0].TenancyID)
		assert.Equal(t, 16000.0, arrears[0].Balance)
		assert.Equal(t, "A / A1", arrears[0].UnitLabel)
	}
}

func TestComputeArrears_WorstFirst(t *testing.T) {
	snap := fixtureSnapshot()
	// Strip tenancy 2's payments so both active tenancies owe.
	var kept []payments.Payment
	for _, p := range snap.Payments {
		if p.TenancyID != 2 {
			kept = append(kept, p)
		}
	}
	snap.Payments = kept

	arrears := ComputeArrears(snap, date(2024, 5, 3))

	if assert.Len(t, arrears, 2) {
		assert.Equal(t, int64(2), arrears[0].TenancyID) // owes 24000
		assert.Equal(t, int64(1), arrears[1].TenancyID) // owes 16000
	}
}

func TestComputeStatistics_EndedTenancyNeverOutstanding(t *testing.T) {
	snap := fixtureSnapshot()
	// The ended tenancy is badly underpaid, but only active tenancies accrue.
	st := ComputeStatistics(snap, date(2024, 5, 3))
	for _, a := range ComputeArrears(snap, date(2024, 5, 3)) {
		assert.NotEqual(t, int64(3), a.TenancyID)
	}
	assert.Equal(t, 16000.0, st.OutstandingAllTime)
}

func TestComputeStatistics_AdvancingClockNeverLowersDue(t *testing.T) {
	snap := fixtureSnapshot()
	prev := -1.0
	for now := date(2024, 5, 3); now.Before(date(2024, 9, 1)); now = now.AddDate(0, 0, 7) {
		st := ComputeStatistics(snap, now)
		assert.GreaterOrEqual(t, st.OutstandingAllTime, prev, "at %s", now.Format(time.DateOnly))
		prev = st.OutstandingAllTime
	}
}
