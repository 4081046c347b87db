package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionLineRequest una línea pedida en caja.
type TransactionLineRequest struct {
	ItemType string `json:"item_type" validate:"required,item_type"`
	ItemID   int64  `json:"item_id" validate:"required,gt=0"`
	Quantity int64  `json:"quantity" validate:"omitempty,gte=1"`
}

// CreateTransactionRequest venta nueva desde caja.
type CreateTransactionRequest struct {
	BranchID        int64                    `json:"branch_id" validate:"required,gt=0"`
	CustomerID      int64                    `json:"customer_id"`
	PaymentType     string                   `json:"payment_type" validate:"max=50"`
	ReferenceNumber string                   `json:"reference_number" validate:"max=100"`
	Items           []TransactionLineRequest `json:"items" validate:"dive"`
}

// UpdateReferenceRequest corrección del número de referencia de pago.
type UpdateReferenceRequest struct {
	ReferenceNumber string `json:"reference_number" validate:"max=100"`
}

// CorrectItemRequest corrección de cantidad por devolución.
type CorrectItemRequest struct {
	Quantity int64 `json:"quantity" validate:"gte=0"`
}

// TransactionItemResponse línea persistida.
type TransactionItemResponse struct {
	ID        int64           `json:"id"`
	ItemType  string          `json:"item_type"`
	ProductID *int64          `json:"product_id,omitempty"`
	ServiceID *int64          `json:"service_id,omitempty"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit,omitempty"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
}

// TransactionResponse cabecera de venta.
type TransactionResponse struct {
	ID                int64                     `json:"id"`
	BranchID          int64                     `json:"branch_id"`
	CustomerID        int64                     `json:"customer_id"`
	CustomerName      string                    `json:"customer_name,omitempty"`
	TransactionNumber string                    `json:"transaction_number"`
	ReferenceNumber   string                    `json:"reference_number"`
	PaymentType       string                    `json:"payment_type"`
	TotalAmount       decimal.Decimal           `json:"total_amount"`
	Status            string                    `json:"status"`
	CreatedAt         time.Time                 `json:"created_at"`
	Items             []TransactionItemResponse `json:"items,omitempty"`
}

// TransactionListResponse lista paginada de ventas.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// CheckoutResponse resultado de confirmar una venta.
type CheckoutResponse struct {
	TransactionID     int64           `json:"transaction_id"`
	TransactionNumber string          `json:"transaction_number"`
	Total             decimal.Decimal `json:"total"`
	State             string          `json:"state"`
}
