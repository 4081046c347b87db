package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto.
const (
	ProductTypeForSale  = "for sale"
	ProductTypeInternal = "internal" // insumo interno, no se vende en caja
)

// Product representa un producto del catálogo. El stock no se guarda aquí:
// se deriva de los movimientos (ver domain/stock).
type Product struct {
	ID           int64
	OrgID        int64
	BranchID     *int64
	Name         string
	Description  string
	Category     string
	SellingPrice decimal.Decimal
	Cost         decimal.Decimal
	Type         string
	Unit         string
	ReorderPoint int64
	IsActive     bool
	CreatedAt    time.Time
}
