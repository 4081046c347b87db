package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sucursales-pos/internal/application/dto"
	"github.com/jhoicas/sucursales-pos/internal/application/sales"
	"github.com/jhoicas/sucursales-pos/internal/domain"
	"github.com/jhoicas/sucursales-pos/pkg/logger"
)

func TestWriteError_Mapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found envuelto", fmt.Errorf("get: %w", domain.ErrNotFound), fiber.StatusNotFound, "NOT_FOUND"},
		{"entrada inválida", domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{"duplicado", domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
		{"email existente", domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
		{"en uso", domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
		{"credenciales", domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{"inactivo", domain.ErrInactiveUser, fiber.StatusForbidden, "INACTIVE_USER"},
		{"carrito vacío", sales.ErrEmptyCart, fiber.StatusUnprocessableEntity, "CART_INVALID"},
		{"sin cliente", sales.ErrMissingCustomer, fiber.StatusUnprocessableEntity, "CART_INVALID"},
		{"ítem no disponible", fmt.Errorf("%w: product 4", sales.ErrItemUnavailable), fiber.StatusUnprocessableEntity, "ITEM_UNAVAILABLE"},
		{"devolución inválida", sales.ErrInvalidReturn, fiber.StatusBadRequest, "VALIDATION"},
		{
			"fallo de paso",
			&sales.StepError{Step: sales.StatePersistingItems, Err: sales.ErrItemWrite, Cause: errors.New("conexión cerrada")},
			fiber.StatusInternalServerError, "COMMIT_FAILED",
		},
		{
			"colisión de número",
			&sales.StepError{Step: sales.StatePersistingHeader, Err: sales.ErrHeaderWrite, Cause: domain.ErrDuplicate},
			fiber.StatusConflict, "REFERENCE_CONFLICT",
		},
		{"desconocido", errors.New("boom"), fiber.StatusInternalServerError, "INTERNAL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return writeError(c, tc.err) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestWriteError_StepDetails(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return writeError(c, &sales.StepError{Step: sales.StatePersistingStockMovements, Err: sales.ErrStockWrite})
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, string(sales.StatePersistingStockMovements), body.Details["step"])
}

func TestWriteError_InternalHidesCauseAndLogsIt(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Out: &buf})

	app := fiber.New()
	app.Use(RequestLogger(log))
	app.Get("/", func(c *fiber.Ctx) error {
		return writeError(c, errors.New(`pq: relation "transactions" does not exist`))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INTERNAL", body.Code)
	assert.Equal(t, "error interno", body.Message)
	assert.NotContains(t, body.Message, "relation")

	assert.Contains(t, buf.String(), `relation \"transactions\" does not exist`)
	assert.Contains(t, buf.String(), "error no mapeado")
}
