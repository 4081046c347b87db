package repository

import (
	"context"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
)

// StockMovementRepository puerto del libro de stock (product_stocks). Solo inserción y lectura;
// Delete existe únicamente para la corrección manual.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, orgID, id int64) (*entity.StockMovement, error)
	// ListByProducts devuelve los movimientos de los productos indicados en la sucursal,
	// agrupados por producto. BranchID 0 = todas.
	ListByProducts(ctx context.Context, orgID, branchID int64, productIDs []int64) (map[int64][]*entity.StockMovement, error)
	// List listado paginado (más recientes primero). Search filtra por nombre de producto.
	List(ctx context.Context, f ListFilter) ([]*entity.StockMovement, int, error)
	Delete(ctx context.Context, orgID, id int64) error
}
