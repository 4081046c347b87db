package repository

import (
	"context"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para el personal (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, orgID, id int64) (*entity.User, error)
	// GetByEmail busca sin filtrar por organización (login).
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByAuthUserID(ctx context.Context, authUserID string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	List(ctx context.Context, f ListFilter) ([]*entity.User, int, error)
	Delete(ctx context.Context, orgID, id int64) error
}
