package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sucursales-pos/internal/application/dto"
	"github.com/jhoicas/sucursales-pos/internal/application/sales"
)

// TransactionHandler caja y ventas.
type TransactionHandler struct {
	uc *sales.TransactionUseCase
}

func NewTransactionHandler(uc *sales.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Catalog godoc
// @Summary      Catálogo de caja
// @Description  Productos a la venta con stock disponible y servicios activos de la sucursal.
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  int  false  "Sucursal"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/pos/catalog [get]
func (h *TransactionHandler) Catalog(c *fiber.Ctx) error {
	catalog, err := h.uc.Catalog(c.UserContext(), GetOrgID(c), BranchScope(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"products": catalog.Products(),
		"services": catalog.Services(),
	})
}

// Checkout godoc
// @Summary      Confirmar venta
// @Description  Arma el carrito contra el catálogo y confirma cabecera, ítems y salidas de stock en una sola transacción.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "Cliente, pago e ítems"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, newAPIError(fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido"))
	}
	in.BranchID = writeBranch(c, in.BranchID)
	if err := validate(&in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Checkout(c.UserContext(), GetOrgID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        q          query  string  false  "Número de venta, referencia o cliente"
// @Param        branch_id  query  int     false  "Sucursal"
// @Param        limit      query  int     false  "Límite"
// @Param        offset     query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	q, err := bindQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), GetOrgID(c), q, 0)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de venta con ítems
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la venta"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), GetOrgID(c), RecordScope(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateReference godoc
// @Summary      Corregir referencia de pago
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la venta"
// @Param        body  body  dto.UpdateReferenceRequest  true  "Referencia"
// @Success      200   {object}  dto.TransactionResponse
// @Router       /api/transactions/{id}/reference [patch]
func (h *TransactionHandler) UpdateReference(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateReferenceRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateReference(c.UserContext(), GetOrgID(c), RecordScope(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CorrectItem godoc
// @Summary      Corregir cantidad de un ítem (devolución)
// @Description  Las unidades devueltas de un producto vuelven al stock; la venta queda como "returned".
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  int  true  "ID de la venta"
// @Param        itemId  path  int  true  "ID del ítem"
// @Param        body    body  dto.CorrectItemRequest  true  "Cantidad final"
// @Success      200     {object}  dto.TransactionResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/items/{itemId} [patch]
func (h *TransactionHandler) CorrectItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	itemID, err := paramID(c, "itemId")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CorrectItemRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CorrectItemQuantity(c.UserContext(), GetOrgID(c), RecordScope(c), id, itemID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Descargar comprobante PDF
// @Tags         transactions
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  int  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/receipt [get]
func (h *TransactionHandler) Receipt(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	pdf, filename, err := h.uc.Receipt(c.UserContext(), GetOrgID(c), RecordScope(c), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
