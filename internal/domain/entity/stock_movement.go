package entity

import "time"

// Direcciones de un movimiento de stock.
const (
	StockIn  = "in"
	StockOut = "out"
)

// StockMovement es una entrada del libro de stock (tabla product_stocks). Solo se agrega;
// nunca se actualiza. Borrar una fila es una corrección manual fuera del flujo normal.
type StockMovement struct {
	ID              int64
	OrgID           int64
	BranchID        int64
	ProductID       int64
	TransactionID   *int64 // venta que originó la salida, si aplica
	Type            string // in | out
	Quantity        int64  // siempre positivo; el signo lo da Type
	Remarks         string
	TransactionDate time.Time
	ExpirationDate  *time.Time
	CreatedAt       time.Time

	Product *Product // relación opcional (listados)
}
