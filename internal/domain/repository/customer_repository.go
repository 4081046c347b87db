package repository

import (
	"context"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer (DIP).
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, orgID, id int64) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	List(ctx context.Context, f ListFilter) ([]*entity.Customer, int, error)
	Delete(ctx context.Context, orgID, id int64) error
}
