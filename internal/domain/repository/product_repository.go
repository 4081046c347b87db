package repository

import (
	"context"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, orgID, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, f ListFilter) ([]*entity.Product, int, error)
	// ListActive devuelve todos los productos activos visibles desde la sucursal (catálogo de caja).
	ListActive(ctx context.Context, orgID, branchID int64) ([]*entity.Product, error)
	Delete(ctx context.Context, orgID, id int64) error
}
