package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sucursales-pos/internal/application/dto"
	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
)

type fakeDashRepo struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeDashRepo) SalesBetween(_ context.Context, _, _ int64, from, to time.Time) (repository.SalesTotals, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return repository.SalesTotals{}, f.err
	}
	if to.Sub(from) <= 24*time.Hour {
		return repository.SalesTotals{Amount: decimal.RequireFromString("120.456"), Count: 3}, nil
	}
	return repository.SalesTotals{Amount: decimal.NewFromInt(900), Count: 20}, nil
}

func (f *fakeDashRepo) CountCustomers(context.Context, int64, int64) (int, error) { return 42, nil }

func (f *fakeDashRepo) UpcomingBookings(context.Context, int64, int64, time.Time, int) ([]*entity.Booking, error) {
	return []*entity.Booking{{
		ID: 1, Status: entity.BookingPending,
		ScheduleDate: time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
		TimeStart:    time.Date(0, 1, 1, 9, 30, 0, 0, time.UTC),
		Customer:     &entity.Customer{Name: "Ana"},
	}}, nil
}

type fakeLowStock struct{}

func (fakeLowStock) LowStock(context.Context, int64, int64) ([]dto.ProductResponse, error) {
	return []dto.ProductResponse{{ID: 9, Name: "Gasa", Unit: "pieza", StockQty: 1, ReorderPoint: 5, LowStock: true}}, nil
}

type memCache struct {
	data map[string]*dto.DashboardSummaryDTO
	ttl  time.Duration
}

func (m *memCache) Get(_ context.Context, key string) (*dto.DashboardSummaryDTO, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, v *dto.DashboardSummaryDTO, ttl time.Duration) error {
	m.data[key] = v
	m.ttl = ttl
	return nil
}

func (m *memCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func fixedClock() time.Time { return time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC) }

func TestGetSummary(t *testing.T) {
	repo := &fakeDashRepo{}
	uc := NewDashboardUseCase(repo, fakeLowStock{}, nil, time.Minute, time.UTC, nil)
	uc.now = fixedClock

	s, err := uc.GetSummary(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.True(t, s.TodaySales.Equal(decimal.RequireFromString("120.46")))
	assert.Equal(t, 3, s.TodayTransactions)
	assert.True(t, s.MonthlySales.Equal(decimal.NewFromInt(900)))
	assert.Equal(t, 42, s.CustomersCount)
	require.Len(t, s.UpcomingBookings, 1)
	assert.Equal(t, "Ana", s.UpcomingBookings[0].CustomerName)
	assert.Equal(t, "09:30", s.UpcomingBookings[0].TimeStart)
	require.Len(t, s.LowStock, 1)
	assert.Equal(t, int64(9), s.LowStock[0].ProductID)
	assert.Equal(t, "2024-03-07", s.DateLabel)
}

func TestGetSummary_UsesCache(t *testing.T) {
	repo := &fakeDashRepo{}
	cache := &memCache{data: map[string]*dto.DashboardSummaryDTO{}}
	uc := NewDashboardUseCase(repo, fakeLowStock{}, cache, 30*time.Second, time.UTC, nil)
	uc.now = fixedClock

	first, err := uc.GetSummary(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
	assert.Equal(t, 30*time.Second, cache.ttl)
	assert.Contains(t, cache.data, "dashboard:1:3:20240307")

	second, err := uc.GetSummary(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls, "la segunda lectura sale de la caché")
	assert.Same(t, first, second)
}

func TestGetSummary_RepoError(t *testing.T) {
	uc := NewDashboardUseCase(&fakeDashRepo{err: errors.New("db caída")}, fakeLowStock{}, nil, time.Minute, time.UTC, nil)
	_, err := uc.GetSummary(context.Background(), 1, 3)
	assert.ErrorContains(t, err, "ventas de hoy")
}

func TestSalesChanged_DropsTodaySummaries(t *testing.T) {
	repo := &fakeDashRepo{}
	cache := &memCache{data: map[string]*dto.DashboardSummaryDTO{}}
	uc := NewDashboardUseCase(repo, fakeLowStock{}, cache, time.Minute, time.UTC, nil)
	uc.now = fixedClock
	ctx := context.Background()

	for _, branch := range []int64{0, 3, 4} {
		_, err := uc.GetSummary(ctx, 1, branch)
		require.NoError(t, err)
	}
	require.Len(t, cache.data, 3)

	uc.SalesChanged(ctx, 1, 3)
	assert.NotContains(t, cache.data, "dashboard:1:3:20240307")
	assert.NotContains(t, cache.data, "dashboard:1:0:20240307")
	assert.Contains(t, cache.data, "dashboard:1:4:20240307", "otras sucursales conservan su resumen")

	calls := repo.calls
	_, err := uc.GetSummary(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, calls+2, repo.calls, "tras una venta el resumen se recalcula")
}
