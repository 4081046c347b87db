package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
)

// SalesTotals suma de ventas y número de transacciones en un rango.
type SalesTotals struct {
	Amount decimal.Decimal
	Count  int
}

// DashboardRepository consultas de lectura para el tablero. Las implementaciones son read-only.
type DashboardRepository interface {
	// SalesBetween suma total_amount de ventas con created_at en [from, to).
	SalesBetween(ctx context.Context, orgID, branchID int64, from, to time.Time) (SalesTotals, error)
	CountCustomers(ctx context.Context, orgID, branchID int64) (int, error)
	// UpcomingBookings reservas desde la fecha dada, más próximas primero.
	UpcomingBookings(ctx context.Context, orgID, branchID int64, from time.Time, limit int) ([]*entity.Booking, error)
}
