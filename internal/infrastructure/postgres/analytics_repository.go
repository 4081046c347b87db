package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el tablero de la sucursal.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador del tablero.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// SalesBetween suma y cuenta las ventas confirmadas en [from, to).
// branchID 0 consolida todas las sucursales de la organización.
func (r *DashboardRepo) SalesBetween(ctx context.Context, orgID, branchID int64, from, to time.Time) (repository.SalesTotals, error) {
	const query = `
	SELECT
	    COALESCE(SUM(t.total_amount), 0) AS amount,
	    COUNT(*)                         AS tx_count
	FROM transactions t
	WHERE t.org_id = $1
	  AND ($2::bigint = 0 OR t.branch_id = $2)
	  AND t.created_at >= $3
	  AND t.created_at <  $4`

	var out repository.SalesTotals
	if err := r.q.QueryRow(ctx, query, orgID, branchID, from, to).Scan(&out.Amount, &out.Count); err != nil {
		return repository.SalesTotals{}, fmt.Errorf("dashboard.SalesBetween: %w", err)
	}
	return out, nil
}

// CountCustomers clientes registrados en la sucursal.
func (r *DashboardRepo) CountCustomers(ctx context.Context, orgID, branchID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM customers WHERE org_id = $1 AND ($2::bigint = 0 OR branch_id = $2)`
	var n int
	if err := r.q.QueryRow(ctx, query, orgID, branchID).Scan(&n); err != nil {
		return 0, fmt.Errorf("dashboard.CountCustomers: %w", err)
	}
	return n, nil
}

// UpcomingBookings próximas reservas abiertas desde la fecha de from, en orden cronológico.
func (r *DashboardRepo) UpcomingBookings(ctx context.Context, orgID, branchID int64, from time.Time, limit int) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + bookingFrom + `
	WHERE b.org_id = $1
	  AND ($2::bigint = 0 OR b.branch_id = $2)
	  AND b.schedule_date >= $3::text::date
	  AND b.status IN ('pending', 'scheduled', 're-scheduled')
	ORDER BY b.schedule_date, b.time_start
	LIMIT $4`
	list, err := queryBookings(ctx, r.q, query, orgID, branchID, from.Format("2006-01-02"), limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard.UpcomingBookings: %w", err)
	}
	return list, nil
}
