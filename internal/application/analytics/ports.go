package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/sucursales-pos/internal/application/dto"
)

// SummaryCache caché del resumen del tablero. Un fallo de caché nunca rompe la consulta.
type SummaryCache interface {
	Get(ctx context.Context, key string) (*dto.DashboardSummaryDTO, bool, error)
	Set(ctx context.Context, key string, value *dto.DashboardSummaryDTO, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// LowStockSource productos en o bajo su punto de reorden.
type LowStockSource interface {
	LowStock(ctx context.Context, orgID, branchID int64) ([]dto.ProductResponse, error)
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (*dto.DashboardSummaryDTO, bool, error) {
	return nil, false, nil
}

func (noopCache) Set(context.Context, string, *dto.DashboardSummaryDTO, time.Duration) error {
	return nil
}

func (noopCache) Delete(context.Context, ...string) error {
	return nil
}
