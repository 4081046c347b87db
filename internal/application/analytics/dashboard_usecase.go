// Package analytics contiene el resumen del tablero por sucursal.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/sucursales-pos/internal/application/dto"
	"github.com/jhoicas/sucursales-pos/internal/application/usecase"
	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
	"github.com/jhoicas/sucursales-pos/pkg/logger"
)

const dashboardUpcomingBookings = 5 // reservas en el widget del tablero

// DashboardUseCase genera el resumen del día y del mes en curso para una sucursal.
type DashboardUseCase struct {
	repo     repository.DashboardRepository
	lowStock LowStockSource
	cache    SummaryCache
	ttl      time.Duration
	loc      *time.Location
	log      *logger.Logger
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso. cache nil = sin caché.
func NewDashboardUseCase(
	repo repository.DashboardRepository,
	lowStock LowStockSource,
	cache SummaryCache,
	ttl time.Duration,
	loc *time.Location,
	log *logger.Logger,
) *DashboardUseCase {
	if cache == nil {
		cache = noopCache{}
	}
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{
		repo:     repo,
		lowStock: lowStock,
		cache:    cache,
		ttl:      ttl,
		loc:      loc,
		log:      log.Named("dashboard"),
		now:      time.Now,
	}
}

func summaryKey(orgID, branchID int64, day time.Time) string {
	return fmt.Sprintf("dashboard:%d:%d:%s", orgID, branchID, day.Format("20060102"))
}

// SalesChanged descarta el resumen de hoy de la sucursal y el de toda la organización.
func (uc *DashboardUseCase) SalesChanged(ctx context.Context, orgID, branchID int64) {
	now := uc.now().In(uc.loc)
	keys := []string{summaryKey(orgID, 0, now)}
	if branchID != 0 {
		keys = append(keys, summaryKey(orgID, branchID, now))
	}
	if err := uc.cache.Delete(ctx, keys...); err != nil {
		uc.log.Warn().Err(err).Strs("keys", keys).Msg("no se pudo invalidar el tablero")
	}
}

// GetSummary construye el resumen de la sucursal (0 = toda la organización).
//
// Cinco consultas en paralelo: ventas de hoy, ventas del mes, clientes, próximas reservas
// y productos con stock bajo.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, orgID, branchID int64) (*dto.DashboardSummaryDTO, error) {
	now := uc.now().In(uc.loc)
	key := summaryKey(orgID, branchID, now)

	if cached, ok, err := uc.cache.Get(ctx, key); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("caché del tablero no disponible")
	} else if ok {
		uc.log.Debug().Str("key", key).Msg("resumen desde caché")
		return cached, nil
	}

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)
	tomorrow := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.loc)

	type salesResult struct {
		totals repository.SalesTotals
		err    error
	}
	type countResult struct {
		n   int
		err error
	}
	type bookingsResult struct {
		list []*entity.Booking
		err  error
	}
	type lowStockResult struct {
		list []dto.ProductResponse
		err  error
	}

	todayCh := make(chan salesResult, 1)
	monthCh := make(chan salesResult, 1)
	customersCh := make(chan countResult, 1)
	bookingsCh := make(chan bookingsResult, 1)
	lowCh := make(chan lowStockResult, 1)

	go func() {
		t, err := uc.repo.SalesBetween(ctx, orgID, branchID, todayStart, tomorrow)
		todayCh <- salesResult{t, err}
	}()
	go func() {
		t, err := uc.repo.SalesBetween(ctx, orgID, branchID, monthStart, tomorrow)
		monthCh <- salesResult{t, err}
	}()
	go func() {
		n, err := uc.repo.CountCustomers(ctx, orgID, branchID)
		customersCh <- countResult{n, err}
	}()
	go func() {
		list, err := uc.repo.UpcomingBookings(ctx, orgID, branchID, todayStart, dashboardUpcomingBookings)
		bookingsCh <- bookingsResult{list, err}
	}()
	go func() {
		list, err := uc.lowStock.LowStock(ctx, orgID, branchID)
		lowCh <- lowStockResult{list, err}
	}()

	today := <-todayCh
	month := <-monthCh
	customers := <-customersCh
	bookings := <-bookingsCh
	low := <-lowCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", month.err)
	}
	if customers.err != nil {
		return nil, fmt.Errorf("dashboard: clientes: %w", customers.err)
	}
	if bookings.err != nil {
		return nil, fmt.Errorf("dashboard: reservas: %w", bookings.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}

	out := &dto.DashboardSummaryDTO{
		BranchID:          branchID,
		TodaySales:        today.totals.Amount.Round(2),
		TodayTransactions: today.totals.Count,
		MonthlySales:      month.totals.Amount.Round(2),
		CustomersCount:    customers.n,
		UpcomingBookings:  make([]dto.BookingResponse, 0, len(bookings.list)),
		LowStock:          make([]dto.LowStockDTO, 0, len(low.list)),
		DateLabel:         now.Format("2006-01-02"),
	}
	for _, b := range bookings.list {
		out.UpcomingBookings = append(out.UpcomingBookings, usecase.ToBookingResponse(b))
	}
	for _, p := range low.list {
		out.LowStock = append(out.LowStock, dto.LowStockDTO{
			ProductID:    p.ID,
			Name:         p.Name,
			Unit:         p.Unit,
			StockQty:     p.StockQty,
			ReorderPoint: p.ReorderPoint,
		})
	}

	if err := uc.cache.Set(ctx, key, out, uc.ttl); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar el tablero en caché")
	}
	return out, nil
}
