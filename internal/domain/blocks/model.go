package blocks

import "time"

type UnitStatus string

const (
	UnitVacant      UnitStatus = "vacant"
	UnitOccupied    UnitStatus = "occupied"
	UnitMaintenance UnitStatus = "maintenance"
)

// Block owns the monthly rent rate; every unit in a block rents at the
// block's current rate.
type Block struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	TotalUnits  int       `json:"total_units"`
	MonthlyRent float64   `json:"monthly_rent"`
	CreatedAt   time.Time `json:"created_at"`
}

type Unit struct {
	ID         int64      `json:"id"`
	BlockID    int64      `json:"block_id"`
	BlockName  string     `json:"block_name,omitempty"` // joined for display
	UnitNumber string     `json:"unit_number"`
	Status     UnitStatus `json:"status"`
}
