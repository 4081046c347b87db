package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/sucursales-pos/internal/application/auth"
	"github.com/jhoicas/sucursales-pos/internal/application/dto"
	"github.com/jhoicas/sucursales-pos/internal/domain"
	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
)

// StaffProvisioner crea la cuenta de acceso de un miembro del personal.
type StaffProvisioner interface {
	Provision(ctx context.Context, orgID int64, in dto.CreateUserRequest) (*entity.User, error)
}

// UserUseCase gestión del personal.
type UserUseCase struct {
	repo        repository.UserRepository
	provisioner StaffProvisioner
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, provisioner StaffProvisioner) *UserUseCase {
	return &UserUseCase{repo: repo, provisioner: provisioner}
}

// List listado paginado; Search filtra por nombre.
func (uc *UserUseCase) List(ctx context.Context, orgID int64, q dto.ListQuery) (*dto.UserListResponse, error) {
	f := toFilter(orgID, q)
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: pageOf(f, total)}, nil
}

// GetByID obtiene un miembro del personal.
func (uc *UserUseCase) GetByID(ctx context.Context, orgID, id int64) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return auth.ToUserResponse(u), nil
}

// Create da de alta al personal con la contraseña por defecto.
func (uc *UserUseCase) Create(ctx context.Context, orgID int64, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	u, err := uc.provisioner.Provision(ctx, orgID, in)
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(u), nil
}

// Update actualización parcial.
func (uc *UserUseCase) Update(ctx context.Context, orgID, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Position != nil {
		u.Position = strings.TrimSpace(*in.Position)
	}
	if in.Type != nil {
		u.Type = *in.Type
	}
	if in.BranchID != nil {
		u.BranchID = *in.BranchID
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(u), nil
}

// Delete elimina al personal. Un usuario no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, orgID, actorID, id int64) error {
	if actorID == id {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(ctx, orgID, id)
}
