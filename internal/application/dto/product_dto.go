package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El stock no se recibe: sale del libro.
type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description"`
	Category     string          `json:"category" validate:"max=100"`
	BranchID     *int64          `json:"branch_id" validate:"omitempty,gt=0"`
	SellingPrice decimal.Decimal `json:"selling_price" validate:"gte=0"`
	Cost         decimal.Decimal `json:"cost" validate:"gte=0"`
	Type         string          `json:"type" validate:"required,product_type"`
	Unit         string          `json:"unit" validate:"required,max=30"`
	ReorderPoint int64           `json:"reorder_point" validate:"gte=0"`
}

// UpdateProductRequest actualización parcial de un producto.
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description"`
	Category     *string          `json:"category" validate:"omitempty,max=100"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
	Cost         *decimal.Decimal `json:"cost"`
	Type         *string          `json:"type" validate:"omitempty,product_type"`
	Unit         *string          `json:"unit" validate:"omitempty,max=30"`
	ReorderPoint *int64           `json:"reorder_point" validate:"omitempty,gte=0"`
	IsActive     *bool            `json:"is_active"`
}

// ProductResponse salida de un producto con su stock derivado.
type ProductResponse struct {
	ID           int64           `json:"id"`
	BranchID     *int64          `json:"branch_id,omitempty"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Cost         decimal.Decimal `json:"cost"`
	Type         string          `json:"type"`
	Unit         string          `json:"unit"`
	ReorderPoint int64           `json:"reorder_point"`
	IsActive     bool            `json:"is_active"`
	StockQty     int64           `json:"stock_qty"`
	ExpiredLots  int             `json:"expired_lots"`
	LowStock     bool            `json:"low_stock"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
