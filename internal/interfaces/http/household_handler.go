package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sucursales-pos/internal/application/usecase"
)

// HouseholdHandler búsqueda en el padrón de hogares.
type HouseholdHandler struct {
	uc *usecase.HouseholdUseCase
}

func NewHouseholdHandler(uc *usecase.HouseholdUseCase) *HouseholdHandler {
	return &HouseholdHandler{uc: uc}
}

// Search godoc
// @Summary      Buscar hogares por similitud de nombre
// @Tags         households
// @Security     Bearer
// @Produce      json
// @Param        q      query  string  true   "Nombre a buscar (vacío = sin resultados)"
// @Param        limit  query  int     false  "Máximo de resultados"
// @Success      200  {array}  dto.HouseholdResponse
// @Router       /api/households/search [get]
func (h *HouseholdHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.UserContext(), c.Query("q"), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
