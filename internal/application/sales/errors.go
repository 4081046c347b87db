package sales

import (
	"errors"
	"fmt"
)

// Errores de validación: el flujo vuelve a Idle sin escribir nada.
var (
	ErrEmptyCart          = errors.New("el carrito está vacío")
	ErrMissingCustomer    = errors.New("debe seleccionar un cliente")
	ErrMissingPaymentType = errors.New("debe indicar el tipo de pago")
	ErrMissingBranch      = errors.New("debe indicar la sucursal")
)

// Errores de escritura, uno por paso. Se reciben envueltos en *StepError.
var (
	ErrReferenceGeneration = errors.New("no se pudo generar el número de transacción")
	ErrHeaderWrite         = errors.New("no se pudo guardar la transacción")
	ErrItemWrite           = errors.New("no se pudieron guardar las líneas de la transacción")
	ErrStockWrite          = errors.New("no se pudieron registrar las salidas de stock")
)

// Errores de las correcciones y del armado del carrito.
var (
	ErrItemUnavailable = errors.New("producto o servicio no disponible o repetido en el carrito")
	ErrInvalidReturn   = errors.New("la cantidad corregida debe estar entre 0 y la cantidad vendida")
)

// StepError falla de un paso de escritura. errors.Is funciona tanto con el error del paso
// (ErrHeaderWrite, ...) como con la causa original.
type StepError struct {
	Step  State
	Err   error
	Cause error
}

func (e *StepError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("%s: %v: %v", e.Step, e.Err, e.Cause)
}

func (e *StepError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// stepSentinel error que corresponde a cada paso de escritura.
func stepSentinel(s State) error {
	switch s {
	case StateReservingReference:
		return ErrReferenceGeneration
	case StatePersistingHeader:
		return ErrHeaderWrite
	case StatePersistingItems:
		return ErrItemWrite
	default:
		return ErrStockWrite
	}
}

// IsValidationError indica si err es un error de validación del flujo.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyCart) || errors.Is(err, ErrMissingCustomer) ||
		errors.Is(err, ErrMissingPaymentType) || errors.Is(err, ErrMissingBranch)
}
