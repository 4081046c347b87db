package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/sucursales-pos/internal/application/analytics"
)

// DashboardHandler maneja el tablero de la sucursal.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen del día y del mes de la sucursal de trabajo.
// GET /api/dashboard/summary?branch_id=
//
// Respuesta: DashboardSummaryDTO (ventas de hoy y del mes, clientes, próximas reservas,
// productos con stock bajo). Se sirve desde caché mientras dure el TTL.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), GetOrgID(c), BranchScope(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
