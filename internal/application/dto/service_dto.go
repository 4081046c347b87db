package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceRequest alta o edición de servicio.
type ServiceRequest struct {
	Name            string          `json:"name" validate:"required,max=200"`
	Description     string          `json:"description"`
	CategoryID      *int64          `json:"category_id" validate:"omitempty,gt=0"`
	BranchID        *int64          `json:"branch_id" validate:"omitempty,gt=0"`
	BasePrice       decimal.Decimal `json:"base_price" validate:"gte=0"`
	DurationMinutes *int            `json:"duration_minutes" validate:"omitempty,gt=0"`
	IsActive        *bool           `json:"is_active"`
}

// ServiceResponse salida de un servicio.
type ServiceResponse struct {
	ID              int64           `json:"id"`
	BranchID        *int64          `json:"branch_id,omitempty"`
	CategoryID      *int64          `json:"category_id,omitempty"`
	CategoryName    string          `json:"category_name,omitempty"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	BasePrice       decimal.Decimal `json:"base_price"`
	DurationMinutes *int            `json:"duration_minutes,omitempty"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ServiceListResponse lista paginada de servicios.
type ServiceListResponse struct {
	Items []ServiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CategoryRequest alta o edición de categoría.
type CategoryRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	ParentID *int64 `json:"parent_id" validate:"omitempty,gt=0"`
}

// CategoryNode nodo del árbol de categorías.
type CategoryNode struct {
	ID       int64          `json:"id"`
	Name     string         `json:"name"`
	ParentID *int64         `json:"parent_id,omitempty"`
	Children []CategoryNode `json:"children"`
}
