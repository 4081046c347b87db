package entity

import "time"

// Customer representa un cliente de una sucursal.
type Customer struct {
	ID            int64
	OrgID         int64
	BranchID      int64
	Name          string
	Birthday      *time.Time
	ContactNumber string
	Email         string
	Address       string
	CreatedAt     time.Time
}
