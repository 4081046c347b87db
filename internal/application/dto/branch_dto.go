package dto

import "time"

// BranchRequest alta o edición de sucursal.
type BranchRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	Address       string `json:"address" validate:"max=500"`
	ContactNumber string `json:"contact_number" validate:"max=50"`
}

// BranchResponse salida de una sucursal.
type BranchResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	ContactNumber string    `json:"contact_number"`
	CreatedAt     time.Time `json:"created_at"`
}
