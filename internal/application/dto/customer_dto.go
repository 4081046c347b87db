package dto

import "time"

// CustomerRequest alta o edición de cliente. Birthday en formato YYYY-MM-DD.
type CustomerRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	BranchID      int64  `json:"branch_id" validate:"required,gt=0"`
	Birthday      string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	ContactNumber string `json:"contact_number" validate:"max=50"`
	Email         string `json:"email" validate:"omitempty,email"`
	Address       string `json:"address" validate:"max=500"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID            int64     `json:"id"`
	BranchID      int64     `json:"branch_id"`
	Name          string    `json:"name"`
	Birthday      string    `json:"birthday,omitempty"`
	ContactNumber string    `json:"contact_number"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	CreatedAt     time.Time `json:"created_at"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
