package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/sucursales-pos/internal/application/dto"
	"github.com/jhoicas/sucursales-pos/internal/domain"
	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
)

// ServiceUseCase catálogo de servicios y su árbol de categorías.
type ServiceUseCase struct {
	repo         repository.ServiceRepository
	categoryRepo repository.ServiceCategoryRepository
}

// NewServiceUseCase construye el caso de uso.
func NewServiceUseCase(repo repository.ServiceRepository, categoryRepo repository.ServiceCategoryRepository) *ServiceUseCase {
	return &ServiceUseCase{repo: repo, categoryRepo: categoryRepo}
}

// List listado paginado; categoryID 0 = todas.
func (uc *ServiceUseCase) List(ctx context.Context, orgID int64, q dto.ListQuery, categoryID int64) (*dto.ServiceListResponse, error) {
	f := repository.ServiceFilter{ListFilter: toFilter(orgID, q), CategoryID: categoryID}
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		items = append(items, toServiceResponse(s))
	}
	return &dto.ServiceListResponse{Items: items, Page: pageOf(f.ListFilter, total)}, nil
}

// GetByID obtiene un servicio.
func (uc *ServiceUseCase) GetByID(ctx context.Context, orgID, id int64) (*dto.ServiceResponse, error) {
	s, err := uc.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	out := toServiceResponse(s)
	return &out, nil
}

// Create crea un servicio.
func (uc *ServiceUseCase) Create(ctx context.Context, orgID int64, in dto.ServiceRequest) (*dto.ServiceResponse, error) {
	s := &entity.Service{OrgID: orgID, IsActive: true, CreatedAt: time.Now()}
	if err := uc.applyService(ctx, orgID, s, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	out := toServiceResponse(s)
	return &out, nil
}

// Update reemplaza los datos del servicio.
func (uc *ServiceUseCase) Update(ctx context.Context, orgID, id int64, in dto.ServiceRequest) (*dto.ServiceResponse, error) {
	s, err := uc.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.applyService(ctx, orgID, s, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	out := toServiceResponse(s)
	return &out, nil
}

// Delete elimina un servicio.
func (uc *ServiceUseCase) Delete(ctx context.Context, orgID, id int64) error {
	return uc.repo.Delete(ctx, orgID, id)
}

func (uc *ServiceUseCase) applyService(ctx context.Context, orgID int64, s *entity.Service, in dto.ServiceRequest) error {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.BasePrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	if in.CategoryID != nil {
		c, err := uc.categoryRepo.GetByID(ctx, orgID, *in.CategoryID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		s.Category = c
	} else {
		s.Category = nil
	}
	s.Name = name
	s.Description = in.Description
	s.CategoryID = in.CategoryID
	s.BranchID = in.BranchID
	s.BasePrice = in.BasePrice
	s.DurationMinutes = in.DurationMinutes
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
	}
	return nil
}

// CategoryTree devuelve las categorías como árbol (raíces ordenadas por nombre).
func (uc *ServiceUseCase) CategoryTree(ctx context.Context, orgID int64) ([]dto.CategoryNode, error) {
	list, err := uc.categoryRepo.List(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return BuildCategoryTree(list), nil
}

// CreateCategory crea una categoría; ParentID debe existir.
func (uc *ServiceUseCase) CreateCategory(ctx context.Context, orgID int64, in dto.CategoryRequest) (*dto.CategoryNode, error) {
	c := &entity.ServiceCategory{OrgID: orgID, Name: strings.TrimSpace(in.Name), ParentID: in.ParentID}
	if c.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkParent(ctx, orgID, 0, in.ParentID); err != nil {
		return nil, err
	}
	if err := uc.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoryNode{ID: c.ID, Name: c.Name, ParentID: c.ParentID, Children: []dto.CategoryNode{}}, nil
}

// UpdateCategory renombra o mueve una categoría. No se permite crear ciclos.
func (uc *ServiceUseCase) UpdateCategory(ctx context.Context, orgID, id int64, in dto.CategoryRequest) (*dto.CategoryNode, error) {
	c, err := uc.categoryRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkParent(ctx, orgID, id, in.ParentID); err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(in.Name)
	if c.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	c.ParentID = in.ParentID
	if err := uc.categoryRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoryNode{ID: c.ID, Name: c.Name, ParentID: c.ParentID, Children: []dto.CategoryNode{}}, nil
}

// DeleteCategory elimina una categoría. Falla con ErrConflict si tiene hijas o servicios.
func (uc *ServiceUseCase) DeleteCategory(ctx context.Context, orgID, id int64) error {
	return uc.categoryRepo.Delete(ctx, orgID, id)
}

// checkParent valida que parentID exista y que no sea id ni descendiente de id.
func (uc *ServiceUseCase) checkParent(ctx context.Context, orgID, id int64, parentID *int64) error {
	if parentID == nil {
		return nil
	}
	list, err := uc.categoryRepo.List(ctx, orgID)
	if err != nil {
		return err
	}
	parents := make(map[int64]*int64, len(list))
	for _, c := range list {
		parents[c.ID] = c.ParentID
	}
	if _, ok := parents[*parentID]; !ok {
		return domain.ErrNotFound
	}
	for cur, steps := parentID, 0; cur != nil && steps <= len(list); steps++ {
		if *cur == id {
			return domain.ErrInvalidInput
		}
		cur = parents[*cur]
	}
	return nil
}

// BuildCategoryTree arma el árbol a partir de la lista plana. Las categorías cuyo padre no
// existe se tratan como raíces.
func BuildCategoryTree(list []*entity.ServiceCategory) []dto.CategoryNode {
	byID := make(map[int64]*entity.ServiceCategory, len(list))
	children := make(map[int64][]*entity.ServiceCategory)
	for _, c := range list {
		byID[c.ID] = c
	}
	var roots []*entity.ServiceCategory
	for _, c := range list {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		if _, ok := byID[*c.ParentID]; !ok {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	visited := make(map[int64]bool, len(list))
	var build func(cs []*entity.ServiceCategory) []dto.CategoryNode
	build = func(cs []*entity.ServiceCategory) []dto.CategoryNode {
		sort.Slice(cs, func(i, j int) bool { return cs[i].Name < cs[j].Name })
		out := make([]dto.CategoryNode, 0, len(cs))
		for _, c := range cs {
			if visited[c.ID] {
				continue
			}
			visited[c.ID] = true
			out = append(out, dto.CategoryNode{
				ID:       c.ID,
				Name:     c.Name,
				ParentID: c.ParentID,
				Children: build(children[c.ID]),
			})
		}
		return out
	}
	return build(roots)
}

func toServiceResponse(s *entity.Service) dto.ServiceResponse {
	out := dto.ServiceResponse{
		ID:              s.ID,
		BranchID:        s.BranchID,
		CategoryID:      s.CategoryID,
		Name:            s.Name,
		Description:     s.Description,
		BasePrice:       s.BasePrice,
		DurationMinutes: s.DurationMinutes,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
	}
	if s.Category != nil {
		out.CategoryName = s.Category.Name
	}
	return out
}
