package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceCategory categoría de servicios (árbol por ParentID).
type ServiceCategory struct {
	ID       int64
	OrgID    int64
	Name     string
	ParentID *int64
}

// Service representa un servicio del catálogo (consulta, procedimiento, etc.).
type Service struct {
	ID              int64
	OrgID           int64
	BranchID        *int64
	CategoryID      *int64
	Name            string
	Description     string
	BasePrice       decimal.Decimal
	DurationMinutes *int
	IsActive        bool
	CreatedAt       time.Time

	Category *ServiceCategory
}
