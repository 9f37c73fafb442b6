package ledger

import (
	"sort"
	"time"

	"github.com/mkandie/rentroll/internal/domain/blocks"
	"github.com/mkandie/rentroll/internal/domain/monthkey"
	"github.com/mkandie/rentroll/internal/domain/payments"
	"github.com/mkandie/rentroll/internal/domain/tenancies"
	"github.com/mkandie/rentroll/internal/domain/tenants"
)

// Snapshot is one immutable read of the store. Statistics are a pure
// function of a snapshot plus the current date, so the same snapshot always
// yields the same numbers.
type Snapshot struct {
	Tenants   []tenants.Tenant
	Blocks    []blocks.Block
	Units     []blocks.Unit
	Tenancies []tenancies.Tenancy
	Payments  []payments.Payment
}

type Statistics struct {
	TotalTenants int `json:"total_tenants"`
	TotalBlocks  int `json:"total_blocks"`
	TotalUnits   int `json:"total_units"`

	OccupiedUnits    int `json:"occupied_units"`
	VacantUnits      int `json:"vacant_units"`
	MaintenanceUnits int `json:"maintenance_units"`

	ActiveTenancies int `json:"active_tenancies"`
	EndedTenancies  int `json:"ended_tenancies"`
	NoticeTenancies int `json:"notice_tenancies"`

	CollectedAllTime   float64 `json:"total_collected_all_time"`
	CollectedThisMonth float64 `json:"total_collected_this_month"`
	ExpectedThisMonth  float64 `json:"total_expected_this_month"`
	OutstandingAllTime float64 `json:"total_outstanding_all_time"`
}

// ComputeStatistics rolls a snapshot up into dashboard numbers.
//
// OutstandingAllTime sums max(0, balance) over active tenancies: a tenant in
// credit never offsets another tenant's arrears. ExpectedThisMonth is a
// plain snapshot of active tenancies times their block rent, not a
// time-weighted figure.
func ComputeStatistics(s Snapshot, now time.Time) Statistics {
	st := Statistics{
		TotalTenants: len(s.Tenants),
		TotalBlocks:  len(s.Blocks),
		TotalUnits:   len(s.Units),
	}

	for _, u := range s.Units {
		switch u.Status {
		case blocks.UnitOccupied:
			st.OccupiedUnits++
		case blocks.UnitMaintenance:
			st.MaintenanceUnits++
		default:
			st.VacantUnits++
		}
	}

	thisMonth := monthkey.For(now)
	paysByTenancy := make(map[int64][]payments.Payment)
	for _, p := range s.Payments {
		st.CollectedAllTime += p.Amount
		if p.ForMonth == thisMonth {
			st.CollectedThisMonth += p.Amount
		}
		paysByTenancy[p.TenancyID] = append(paysByTenancy[p.TenancyID], p)
	}

	for _, t := range s.Tenancies {
		switch t.Status {
		case tenancies.StatusActive:
			st.ActiveTenancies++
		case tenancies.StatusEnded:
			st.EndedTenancies++
		case tenancies.StatusNotice:
			st.NoticeTenancies++
		}
		if t.Status != tenancies.StatusActive {
			continue
		}
		st.ExpectedThisMonth += t.MonthlyRent
		standing := ComputeStanding(t, paysByTenancy[t.ID], now)
		if standing.Outstanding() {
			st.OutstandingAllTime += standing.Balance
		}
	}

	return st
}

// ComputeArrears returns the standings of active tenancies that owe money,
// worst first.
func ComputeArrears(s Snapshot, now time.Time) []Standing {
	paysByTenancy := make(map[int64][]payments.Payment)
	for _, p := range s.Payments {
		paysByTenancy[p.TenancyID] = append(paysByTenancy[p.TenancyID], p)
	}

	var out []Standing
	for _, t := range s.Tenancies {
		if t.Status != tenancies.StatusActive {
			continue
		}
		standing := ComputeStanding(t, paysByTenancy[t.ID], now)
		if standing.Outstanding() {
			out = append(out, standing)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Balance > out[j].Balance })
	return out
}
