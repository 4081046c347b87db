package entity

import "time"

// Branch representa una sucursal de la organización.
type Branch struct {
	ID            int64
	OrgID         int64
	Name          string
	Address       string
	ContactNumber string
	CreatedAt     time.Time
}
