package stock

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestComputeOnHand_Empty(t *testing.T) {
	assert.Equal(t, int64(0), ComputeOnHand(nil, time.Now()))
	assert.Equal(t, int64(0), ComputeOnHand([]Movement{}, time.Now()))
}

func TestComputeOnHand_SumsInMinusOut(t *testing.T) {
	asOf := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	ms := []Movement{
		{Direction: entity.StockIn, Quantity: 10},
		{Direction: entity.StockIn, Quantity: 5, ExpirationDate: day(2024, 12, 31)},
		{Direction: entity.StockOut, Quantity: 3},
	}
	assert.Equal(t, int64(12), ComputeOnHand(ms, asOf))
}

func TestComputeOnHand_ExcludesExpired(t *testing.T) {
	asOf := time.Date(2024, 5, 10, 23, 59, 0, 0, time.UTC)
	ms := []Movement{
		{Direction: entity.StockIn, Quantity: 10, ExpirationDate: day(2024, 5, 9)},
		{Direction: entity.StockIn, Quantity: 4},
		{Direction: entity.StockOut, Quantity: 1, ExpirationDate: day(2024, 1, 1)},
	}
	assert.Equal(t, int64(4), ComputeOnHand(ms, asOf))
}

func TestComputeOnHand_ExpiringTodayStillCounts(t *testing.T) {
	// vence hoy: la comparación ignora la hora
	asOf := time.Date(2024, 5, 10, 23, 0, 0, 0, time.UTC)
	ms := []Movement{{Direction: entity.StockIn, Quantity: 7, ExpirationDate: day(2024, 5, 10)}}
	assert.Equal(t, int64(7), ComputeOnHand(ms, asOf))
	assert.Equal(t, 0, CountExpiredLots(ms, asOf))
}

func TestComputeOnHand_CanGoNegative(t *testing.T) {
	ms := []Movement{
		{Direction: entity.StockIn, Quantity: 1},
		{Direction: entity.StockOut, Quantity: 3},
	}
	assert.Equal(t, int64(-2), ComputeOnHand(ms, time.Now()))
}

func TestComputeOnHand_IgnoresUnknownDirection(t *testing.T) {
	ms := []Movement{
		{Direction: entity.StockIn, Quantity: 2},
		{Direction: "adjust", Quantity: 100},
	}
	assert.Equal(t, int64(2), ComputeOnHand(ms, time.Now()))
}

func TestComputeOnHand_OrderIndependentAndPure(t *testing.T) {
	asOf := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	ms := []Movement{
		{Direction: entity.StockIn, Quantity: 20},
		{Direction: entity.StockOut, Quantity: 4},
		{Direction: entity.StockIn, Quantity: 6, ExpirationDate: day(2024, 4, 1)},
		{Direction: entity.StockIn, Quantity: 9, ExpirationDate: day(2025, 1, 1)},
		{Direction: entity.StockOut, Quantity: 2},
	}
	want := ComputeOnHand(ms, asOf)
	assert.Equal(t, int64(23), want)

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := append([]Movement(nil), ms...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, ComputeOnHand(shuffled, asOf))
	}
	assert.Equal(t, want, ComputeOnHand(ms, asOf), "segunda ejecución debe dar lo mismo")
	assert.Equal(t, int64(20), ms[0].Quantity)
}

func TestCountExpiredLots_CountsLotsNotUnits(t *testing.T) {
	asOf := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	ms := []Movement{
		{Direction: entity.StockIn, Quantity: 50, ExpirationDate: day(2024, 5, 1)},
		{Direction: entity.StockIn, Quantity: 30, ExpirationDate: day(2023, 12, 1)},
		{Direction: entity.StockIn, Quantity: 1},
	}
	assert.Equal(t, 2, CountExpiredLots(ms, asOf))
	assert.Equal(t, Level{OnHand: 1, ExpiredLots: 2}, Summarize(ms, asOf))
}

func TestFromEntities(t *testing.T) {
	exp := day(2030, 1, 1)
	got := FromEntities([]*entity.StockMovement{
		{Type: entity.StockIn, Quantity: 3, ExpirationDate: exp},
		nil,
		{Type: entity.StockOut, Quantity: 1},
	})
	assert.Equal(t, []Movement{
		{Direction: entity.StockIn, Quantity: 3, ExpirationDate: exp},
		{Direction: entity.StockOut, Quantity: 1},
	}, got)
}
