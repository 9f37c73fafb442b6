package payments

import "time"

// Payment is attributed to a billing period by ForMonth (a YYYY-MM key),
// which is independent of the date the money actually arrived.
type Payment struct {
	ID        int64     `json:"id"`
	TenancyID int64     `json:"tenancy_id"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"payment_date"`
	ForMonth  string    `json:"payment_for_month"`
	Method    string    `json:"payment_method"`
	Notes     string    `json:"notes"`

	// joined for display
	TenantName string `json:"tenant_name,omitempty"`
	UnitLabel  string `json:"unit_label,omitempty"`
}
