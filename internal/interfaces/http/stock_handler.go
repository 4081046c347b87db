package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sucursales-pos/internal/application/dto"
	"github.com/jhoicas/sucursales-pos/internal/application/usecase"
)

// StockHandler libro de stock (solo admin).
type StockHandler struct {
	uc *usecase.StockUseCase
}

func NewStockHandler(uc *usecase.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// List godoc
// @Summary      Listar movimientos de stock
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        q          query  string  false  "Búsqueda por nombre de producto"
// @Param        branch_id  query  int     false  "Sucursal"
// @Param        limit      query  int     false  "Límite"
// @Param        offset     query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.StockMovementListResponse
// @Router       /api/stocks [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	q, err := bindQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), GetOrgID(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StockIn godoc
// @Summary      Registrar entrada de mercancía
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockInRequest  true  "Producto, cantidad y vencimiento"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stocks [post]
func (h *StockHandler) StockIn(c *fiber.Ctx) error {
	var in dto.StockInRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, newAPIError(fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido"))
	}
	in.BranchID = writeBranch(c, in.BranchID)
	if err := validate(&in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.StockIn(c.UserContext(), GetOrgID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar movimiento (corrección manual)
// @Tags         stocks
// @Security     Bearer
// @Param        id  path  int  true  "ID del movimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocks/{id} [delete]
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), GetOrgID(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
