package repository

import (
	"context"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
)

// ServiceFilter filtros del listado de servicios.
type ServiceFilter struct {
	ListFilter
	CategoryID int64 // 0 = todas
}

// ServiceRepository define el puerto de persistencia para Service (DIP).
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, orgID, id int64) (*entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error
	List(ctx context.Context, f ServiceFilter) ([]*entity.Service, int, error)
	ListActive(ctx context.Context, orgID, branchID int64) ([]*entity.Service, error)
	Delete(ctx context.Context, orgID, id int64) error
}

// ServiceCategoryRepository define el puerto de persistencia para categorías de servicio.
type ServiceCategoryRepository interface {
	Create(ctx context.Context, c *entity.ServiceCategory) error
	GetByID(ctx context.Context, orgID, id int64) (*entity.ServiceCategory, error)
	Update(ctx context.Context, c *entity.ServiceCategory) error
	List(ctx context.Context, orgID int64) ([]*entity.ServiceCategory, error)
	Delete(ctx context.Context, orgID, id int64) error
}
