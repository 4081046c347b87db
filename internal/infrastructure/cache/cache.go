package cache

import (
	"context"
	"time"

	"github.com/jhoicas/sucursales-pos/internal/application/analytics"
	"github.com/jhoicas/sucursales-pos/internal/application/dto"
)

var _ analytics.SummaryCache = NoopDashboardCache{}

// NoopDashboardCache se usa cuando no hay Redis configurado: siempre falla la lectura.
type NoopDashboardCache struct{}

func (NoopDashboardCache) Get(_ context.Context, _ string) (*dto.DashboardSummaryDTO, bool, error) {
	return nil, false, nil
}

func (NoopDashboardCache) Set(_ context.Context, _ string, _ *dto.DashboardSummaryDTO, _ time.Duration) error {
	return nil
}

func (NoopDashboardCache) Delete(_ context.Context, _ ...string) error {
	return nil
}
