package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sucursales-pos/internal/application/dto"
	"github.com/jhoicas/sucursales-pos/internal/application/sales"
	"github.com/jhoicas/sucursales-pos/internal/domain"
	"github.com/jhoicas/sucursales-pos/internal/domain/cart"
	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/pkg/validator"
)

// apiError respuesta de error ya resuelta (status + cuerpo).
type apiError struct {
	status int
	body   dto.ErrorResponse
}

func (e *apiError) Error() string { return e.body.Message }

func newAPIError(status int, code, msg string) *apiError {
	return &apiError{status: status, body: dto.ErrorResponse{Code: code, Message: msg}}
}

// bindBody parsea el JSON y valida los tags `validate`.
func bindBody(c *fiber.Ctx, in any) error {
	if err := c.BodyParser(in); err != nil {
		return newAPIError(fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	return validate(in)
}

func validate(in any) error {
	if errs := validator.ValidateStruct(in); errs != nil {
		e := newAPIError(fiber.StatusBadRequest, "VALIDATION", "datos inválidos")
		e.body.Details = errs
		return e
	}
	return nil
}

// bindQuery parsea los parámetros de listado.
func bindQuery(c *fiber.Ctx) (dto.ListQuery, error) {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return q, newAPIError(fiber.StatusBadRequest, "INVALID_QUERY", "parámetros inválidos")
	}
	q.DefaultPage()
	q.BranchID = BranchScope(c)
	return q, nil
}

// paramID lee un id numérico de la ruta.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, newAPIError(fiber.StatusBadRequest, "INVALID_ID", name+" inválido")
	}
	return id, nil
}

// writeBranch sucursal destino de una escritura: un usuario normal solo escribe en la suya.
func writeBranch(c *fiber.Ctx, requested int64) int64 {
	if GetRole(c) != entity.UserTypeAdmin {
		return localInt64(c, LocalBranchID)
	}
	if requested > 0 {
		return requested
	}
	return BranchScope(c)
}

// writeError traduce errores de dominio y del flujo de venta a status HTTP.
func writeError(c *fiber.Ctx, err error) error {
	var ae *apiError
	if errors.As(err, &ae) {
		return c.Status(ae.status).JSON(ae.body)
	}

	var stepErr *sales.StepError
	if errors.As(err, &stepErr) {
		body := dto.ErrorResponse{Code: "COMMIT_FAILED", Message: stepErr.Err.Error(), Details: fiber.Map{"step": stepErr.Step}}
		if errors.Is(err, domain.ErrDuplicate) {
			body.Code = "REFERENCE_CONFLICT"
			return c.Status(fiber.StatusConflict).JSON(body)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}

	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case sales.IsValidationError(err):
		status, code = fiber.StatusUnprocessableEntity, "CART_INVALID"
	case errors.Is(err, sales.ErrItemUnavailable):
		status, code = fiber.StatusUnprocessableEntity, "ITEM_UNAVAILABLE"
	case errors.Is(err, sales.ErrInvalidReturn), errors.Is(err, cart.ErrInvalidQuantity):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "ya existe un usuario con ese email"})
	case errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el registro no se puede eliminar porque está en uso"})
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrInactiveUser):
		status, code = fiber.StatusForbidden, "INACTIVE_USER"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	}
	if status == fiber.StatusInternalServerError {
		requestLogger(c).Error().Err(err).
			Str("path", c.Path()).
			Str("request_id", requestID(c)).
			Msg("error no mapeado")
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: "error interno"})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
