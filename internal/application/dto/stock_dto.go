package dto

import "time"

// StockInRequest recepción de mercancía (movimiento "in"). Fechas en formato YYYY-MM-DD.
type StockInRequest struct {
	ProductID       int64  `json:"product_id" validate:"required,gt=0"`
	BranchID        int64  `json:"branch_id" validate:"required,gt=0"`
	Quantity        int64  `json:"quantity" validate:"required,gte=1"`
	TransactionDate string `json:"transaction_date" validate:"omitempty,datetime=2006-01-02"`
	ExpirationDate  string `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
	Remarks         string `json:"remarks" validate:"max=500"`
}

// StockMovementResponse salida de una entrada del libro.
type StockMovementResponse struct {
	ID              int64     `json:"id"`
	BranchID        int64     `json:"branch_id"`
	ProductID       int64     `json:"product_id"`
	ProductName     string    `json:"product_name,omitempty"`
	TransactionID   *int64    `json:"transaction_id,omitempty"`
	Type            string    `json:"type"`
	Quantity        int64     `json:"quantity"`
	Remarks         string    `json:"remarks"`
	TransactionDate string    `json:"transaction_date"`
	ExpirationDate  string    `json:"expiration_date,omitempty"`
	Expired         bool      `json:"expired"`
	CreatedAt       time.Time `json:"created_at"`
}

// StockMovementListResponse lista paginada del libro.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
