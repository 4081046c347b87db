package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	TransactionCompleted = "completed"
	TransactionReturned  = "returned"
)

// Tipos de línea.
const (
	ItemTypeProduct = "product"
	ItemTypeService = "service"
)

// Transaction cabecera de una venta. Inmutable salvo ReferenceNumber (corregible) y Status.
type Transaction struct {
	ID                int64
	OrgID             int64
	BranchID          int64
	CustomerID        int64
	TransactionNumber string // "YYYYMMDD-n", asignado al confirmar
	ReferenceNumber   string // referencia de pago (voucher, transferencia)
	PaymentType       string
	TotalAmount       decimal.Decimal
	Status            string
	CreatedBy         *int64
	CreatedAt         time.Time

	Customer *Customer
}

// TransactionItem una línea persistida de la venta.
type TransactionItem struct {
	ID            int64
	TransactionID int64
	ItemType      string
	ProductID     *int64
	ServiceID     *int64
	Name          string
	Unit          string
	Quantity      int64
	Price         decimal.Decimal
	Total         decimal.Decimal
}
