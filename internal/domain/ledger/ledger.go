// Package ledger computes rent obligations. Accrual is whole-month: a
// tenancy owes one month of rent per elapsed month, with the current month
// falling due once its anniversary day has passed. There is no proration
// and no rent-rate history — the block's current rate applies across the
// tenancy's whole lifetime, including months billed before a rate change.
package ledger

import (
	"time"

	"github.com/mkandie/rentroll/internal/domain/payments"
	"github.com/mkandie/rentroll/internal/domain/tenancies"
)

// MonthsElapsed counts the months of rent due from start through now.
// A tenancy starting today owes its first month immediately. The
// day-of-month comparison is a deliberate approximation: a start day of 31
// simply never triggers early in 30-day months.
func MonthsElapsed(start, now time.Time) int {
	months := (now.Year()-start.Year())*12 + int(now.Month()) - int(start.Month())
	if now.Day() >= start.Day() {
		months++
	}
	if months < 0 {
		return 0
	}
	return months
}

// Standing is one tenancy's position against its obligation as of a given
// date. Balance may be negative (overpayment); only a positive balance is
// arrears.
type Standing struct {
	TenancyID     int64   `json:"tenancy_id"`
	TenantName    string  `json:"tenant_name"`
	UnitLabel     string  `json:"unit_label"`
	MonthlyRent   float64 `json:"monthly_rent"`
	MonthsElapsed int     `json:"months_elapsed"`
	RentDue       float64 `json:"rent_due"`
	TotalPaid     float64 `json:"total_paid"`
	Balance       float64 `json:"balance"`
}

// Outstanding reports whether the tenancy owes anything.
func (s Standing) Outstanding() bool { return s.Balance > 0 }

// ComputeStanding reconciles one tenancy. Every recorded payment counts
// toward TotalPaid regardless of the month it was attributed to; the
// payment_for_month key only matters for the monthly collection rollup.
func ComputeStanding(t tenancies.Tenancy, pays []payments.Payment, now time.Time) Standing {
	months := MonthsElapsed(t.StartDate, now)

	var paid float64
	for _, p := range pays {
		paid += p.Amount
	}

	due := t.MonthlyRent * float64(months)
	return Standing{
		TenancyID:     t.ID,
		TenantName:    t.TenantName,
		UnitLabel:     t.BlockName + " / " + t.UnitNumber,
		MonthlyRent:   t.MonthlyRent,
		MonthsElapsed: months,
		RentDue:       due,
		TotalPaid:     paid,
		Balance:       due - paid,
	}
}
