package sales

import (
	"context"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
)

// SaleTxRunner ejecuta fn dentro de una sola transacción de base de datos con repos atados a ella.
// Si fn devuelve error se hace rollback de todo lo escrito.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// ReceiptGenerator genera el comprobante PDF de una venta.
type ReceiptGenerator interface {
	GenerateReceipt(branch *entity.Branch, t *entity.Transaction, items []*entity.TransactionItem) ([]byte, error)
}

// SalesListener recibe aviso cuando cambian las ventas de una sucursal (p. ej. para invalidar el
// resumen del tablero). No devuelve error: un fallo del aviso no deshace la venta.
type SalesListener interface {
	SalesChanged(ctx context.Context, orgID, branchID int64)
}
