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

// StockUseCase libro de stock: listado, entradas y corrección manual.
type StockUseCase struct {
	repo        repository.StockMovementRepository
	productRepo repository.ProductRepository
	loc         *time.Location
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(repo repository.StockMovementRepository, productRepo repository.ProductRepository, loc *time.Location) *StockUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &StockUseCase{repo: repo, productRepo: productRepo, loc: loc}
}

// List listado paginado del libro (más recientes primero). Search filtra por nombre de producto.
func (uc *StockUseCase) List(ctx context.Context, orgID int64, q dto.ListQuery) (*dto.StockMovementListResponse, error) {
	f := toFilter(orgID, q)
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	today := time.Now().In(uc.loc)
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m, today))
	}
	return &dto.StockMovementListResponse{Items: items, Page: pageOf(f, total)}, nil
}

// StockIn registra una recepción de mercancía (movimiento "in").
func (uc *StockUseCase) StockIn(ctx context.Context, orgID int64, in dto.StockInRequest) (*dto.StockMovementResponse, error) {
	if in.Quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.productRepo.GetByID(ctx, orgID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now().In(uc.loc)
	txDate, err := parseDate(in.TransactionDate)
	if err != nil {
		return nil, err
	}
	if txDate == nil {
		txDate = &now
	}
	exp, err := parseDate(in.ExpirationDate)
	if err != nil {
		return nil, err
	}
	m := &entity.StockMovement{
		OrgID:           orgID,
		BranchID:        in.BranchID,
		ProductID:       p.ID,
		Type:            entity.StockIn,
		Quantity:        in.Quantity,
		Remarks:         strings.TrimSpace(in.Remarks),
		TransactionDate: *txDate,
		ExpirationDate:  exp,
		CreatedAt:       now,
		Product:         p,
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	out := toMovementResponse(m, now)
	return &out, nil
}

// Delete corrección manual: elimina una entrada del libro.
func (uc *StockUseCase) Delete(ctx context.Context, orgID, id int64) error {
	m, err := uc.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, orgID, id)
}

func toMovementResponse(m *entity.StockMovement, today time.Time) dto.StockMovementResponse {
	out := dto.StockMovementResponse{
		ID:              m.ID,
		BranchID:        m.BranchID,
		ProductID:       m.ProductID,
		TransactionID:   m.TransactionID,
		Type:            m.Type,
		Quantity:        m.Quantity,
		Remarks:         m.Remarks,
		TransactionDate: m.TransactionDate.Format(dateLayout),
		ExpirationDate:  formatDate(m.ExpirationDate),
		CreatedAt:       m.CreatedAt,
	}
	if m.ExpirationDate != nil {
		out.Expired = m.ExpirationDate.Format(dateLayout) < today.Format(dateLayout)
	}
	if m.Product != nil {
		out.ProductName = m.Product.Name
	}
	return out
}
