package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sucursales-pos/internal/application/dto"
	"github.com/jhoicas/sucursales-pos/internal/application/sales"
	"github.com/jhoicas/sucursales-pos/internal/application/usecase"
)

// CustomerHandler maneja las peticiones HTTP de clientes.
type CustomerHandler struct {
	uc   *usecase.CustomerUseCase
	txUC *sales.TransactionUseCase
}

// NewCustomerHandler construye el handler. txUC sirve el historial de compras del cliente.
func NewCustomerHandler(uc *usecase.CustomerUseCase, txUC *sales.TransactionUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc, txUC: txUC}
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        q          query  string  false  "Búsqueda por nombre"
// @Param        branch_id  query  int     false  "Sucursal"
// @Param        limit      query  int     false  "Límite"
// @Param        offset     query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.CustomerListResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
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

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), GetOrgID(c), RecordScope(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CustomerRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, newAPIError(fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido"))
	}
	in.BranchID = writeBranch(c, in.BranchID)
	if err := validate(&in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetOrgID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del cliente"
// @Param        body  body  dto.CustomerRequest  true  "Datos del cliente"
// @Success      200   {object}  dto.CustomerResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, newAPIError(fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido"))
	}
	in.BranchID = writeBranch(c, in.BranchID)
	if err := validate(&in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetOrgID(c), RecordScope(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cliente
// @Tags         customers
// @Security     Bearer
// @Param        id  path  int  true  "ID del cliente"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), GetOrgID(c), RecordScope(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Transactions godoc
// @Summary      Historial de compras del cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id      path   int  true   "ID del cliente"
// @Param        limit   query  int  false  "Límite"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/customers/{id}/transactions [get]
func (h *CustomerHandler) Transactions(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	q, err := bindQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	if _, err := h.uc.GetByID(c.UserContext(), GetOrgID(c), RecordScope(c), id); err != nil {
		return writeError(c, err)
	}
	out, err := h.txUC.List(c.UserContext(), GetOrgID(c), q, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
