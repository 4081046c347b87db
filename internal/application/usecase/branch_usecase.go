package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/sucursales-pos/internal/application/dto"
	"github.com/jhoicas/sucursales-pos/internal/domain"
	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
)

// BranchUseCase CRUD de sucursales.
type BranchUseCase struct {
	repo repository.BranchRepository
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(repo repository.BranchRepository) *BranchUseCase {
	return &BranchUseCase{repo: repo}
}

// List devuelve todas las sucursales de la organización (alimenta el selector de sucursal).
func (uc *BranchUseCase) List(ctx context.Context, orgID int64) ([]dto.BranchResponse, error) {
	list, err := uc.repo.List(ctx, orgID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBranchResponse(b))
	}
	return out, nil
}

// Create crea una sucursal.
func (uc *BranchUseCase) Create(ctx context.Context, orgID int64, in dto.BranchRequest) (*dto.BranchResponse, error) {
	b := &entity.Branch{
		OrgID:         orgID,
		Name:          strings.TrimSpace(in.Name),
		Address:       strings.TrimSpace(in.Address),
		ContactNumber: strings.TrimSpace(in.ContactNumber),
		CreatedAt:     time.Now(),
	}
	if b.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	out := toBranchResponse(b)
	return &out, nil
}

// Update reemplaza los datos de la sucursal.
func (uc *BranchUseCase) Update(ctx context.Context, orgID, id int64, in dto.BranchRequest) (*dto.BranchResponse, error) {
	b, err := uc.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	b.Name = strings.TrimSpace(in.Name)
	b.Address = strings.TrimSpace(in.Address)
	b.ContactNumber = strings.TrimSpace(in.ContactNumber)
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	out := toBranchResponse(b)
	return &out, nil
}

// Delete elimina la sucursal. Falla con ErrConflict si tiene registros asociados.
func (uc *BranchUseCase) Delete(ctx context.Context, orgID, id int64) error {
	return uc.repo.Delete(ctx, orgID, id)
}

func toBranchResponse(b *entity.Branch) dto.BranchResponse {
	return dto.BranchResponse{
		ID:            b.ID,
		Name:          b.Name,
		Address:       b.Address,
		ContactNumber: b.ContactNumber,
		CreatedAt:     b.CreatedAt,
	}
}
