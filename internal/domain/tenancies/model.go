package tenancies

import "time"

type Status string

const (
	StatusActive Status = "active"
	StatusEnded  Status = "ended"
	StatusNotice Status = "notice"
)

// Tenancy is the time-bounded occupancy of one unit by one tenant.
// EndDate is nil while the tenancy is open.
type Tenancy struct {
	ID        int64      `json:"id"`
	TenantID  int64      `json:"tenant_id"`
	UnitID    int64      `json:"unit_id"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Status    Status     `json:"status"`

	// joined for display
	TenantName  string  `json:"tenant_name,omitempty"`
	UnitNumber  string  `json:"unit_number,omitempty"`
	BlockName   string  `json:"block_name,omitempty"`
	MonthlyRent float64 `json:"monthly_rent,omitempty"`
}
