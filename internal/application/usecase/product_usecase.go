package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/sucursales-pos/internal/application/dto"
	"github.com/jhoicas/sucursales-pos/internal/domain"
	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
	"github.com/jhoicas/sucursales-pos/internal/domain/stock"
)

// ProductUseCase CRUD de productos. El stock se deriva del libro de movimientos en cada lectura.
type ProductUseCase struct {
	repo    repository.ProductRepository
	movRepo repository.StockMovementRepository
	loc     *time.Location
}

// NewProductUseCase construye el caso de uso. loc define el "hoy" para excluir lotes vencidos.
func NewProductUseCase(repo repository.ProductRepository, movRepo repository.StockMovementRepository, loc *time.Location) *ProductUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ProductUseCase{repo: repo, movRepo: movRepo, loc: loc}
}

// List listado paginado con stock_qty y expired_lots de la sucursal indicada (0 = todas).
func (uc *ProductUseCase) List(ctx context.Context, orgID int64, q dto.ListQuery) (*dto.ProductListResponse, error) {
	f := toFilter(orgID, q)
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items, err := uc.withStock(ctx, orgID, f.BranchID, list)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Items: items, Page: pageOf(f, total)}, nil
}

// LowStock productos activos con stock_qty <= reorder_point en la sucursal.
func (uc *ProductUseCase) LowStock(ctx context.Context, orgID, branchID int64) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListActive(ctx, orgID, branchID)
	if err != nil {
		return nil, err
	}
	items, err := uc.withStock(ctx, orgID, branchID, list)
	if err != nil {
		return nil, err
	}
	out := items[:0]
	for _, p := range items {
		if p.LowStock {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetByID obtiene un producto con su stock en la sucursal.
func (uc *ProductUseCase) GetByID(ctx context.Context, orgID, branchID, id int64) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.withStock(ctx, orgID, branchID, []*entity.Product{p})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// Create crea un producto sin stock; el stock entra por movimientos.
func (uc *ProductUseCase) Create(ctx context.Context, orgID int64, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p := &entity.Product{
		OrgID:        orgID,
		BranchID:     in.BranchID,
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Category:     strings.TrimSpace(in.Category),
		SellingPrice: in.SellingPrice,
		Cost:         in.Cost,
		Type:         in.Type,
		Unit:         strings.TrimSpace(in.Unit),
		ReorderPoint: in.ReorderPoint,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if p.Name == "" || p.SellingPrice.IsNegative() || p.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	out := toProductResponse(p, stock.Level{})
	return &out, nil
}

// Update actualización parcial. El stock no se modifica aquí; la respuesta lo trae en el alcance branchID.
func (uc *ProductUseCase) Update(ctx context.Context, orgID, branchID, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.SellingPrice != nil {
		p.SellingPrice = *in.SellingPrice
	}
	if in.Cost != nil {
		p.Cost = *in.Cost
	}
	if in.Type != nil {
		p.Type = *in.Type
	}
	if in.Unit != nil {
		p.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.ReorderPoint != nil {
		p.ReorderPoint = *in.ReorderPoint
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if p.Name == "" || p.SellingPrice.IsNegative() || p.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, orgID, branchID, p.ID)
}

// Delete elimina el producto. Falla con ErrConflict si tiene movimientos o ventas.
func (uc *ProductUseCase) Delete(ctx context.Context, orgID, id int64) error {
	return uc.repo.Delete(ctx, orgID, id)
}

// withStock agrega el nivel de stock derivado a cada producto.
func (uc *ProductUseCase) withStock(ctx context.Context, orgID, branchID int64, list []*entity.Product) ([]dto.ProductResponse, error) {
	ids := make([]int64, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	movs, err := uc.movRepo.ListByProducts(ctx, orgID, branchID, ids)
	if err != nil {
		return nil, err
	}
	today := time.Now().In(uc.loc)
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p, stock.Summarize(stock.FromEntities(movs[p.ID]), today)))
	}
	return out, nil
}

func toProductResponse(p *entity.Product, lvl stock.Level) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		BranchID:     p.BranchID,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		SellingPrice: p.SellingPrice,
		Cost:         p.Cost,
		Type:         p.Type,
		Unit:         p.Unit,
		ReorderPoint: p.ReorderPoint,
		IsActive:     p.IsActive,
		StockQty:     lvl.OnHand,
		ExpiredLots:  lvl.ExpiredLots,
		LowStock:     lvl.OnHand <= p.ReorderPoint,
		CreatedAt:    p.CreatedAt,
	}
}
