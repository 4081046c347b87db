package repository

import (
	"context"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
)

// BranchRepository define el puerto de persistencia para Branch (DIP).
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, orgID, id int64) (*entity.Branch, error)
	Update(ctx context.Context, branch *entity.Branch) error
	List(ctx context.Context, orgID int64) ([]*entity.Branch, error)
	Delete(ctx context.Context, orgID, id int64) error
}
