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

// CustomerUseCase CRUD de clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// List listado paginado; Search filtra por nombre.
func (uc *CustomerUseCase) List(ctx context.Context, orgID int64, q dto.ListQuery) (*dto.CustomerListResponse, error) {
	f := toFilter(orgID, q)
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{Items: items, Page: pageOf(f, total)}, nil
}

// GetByID obtiene un cliente. Un cliente de otra sucursal que branchID es ErrNotFound (branchID 0 = todas).
func (uc *CustomerUseCase) GetByID(ctx context.Context, orgID, branchID, id int64) (*dto.CustomerResponse, error) {
	c, err := uc.load(ctx, orgID, branchID, id)
	if err != nil {
		return nil, err
	}
	out := toCustomerResponse(c)
	return &out, nil
}

// Create crea un cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, orgID int64, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	c := &entity.Customer{OrgID: orgID, CreatedAt: time.Now()}
	if err := applyCustomer(c, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	out := toCustomerResponse(c)
	return &out, nil
}

// Update reemplaza los datos del cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, orgID, branchID, id int64, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.load(ctx, orgID, branchID, id)
	if err != nil {
		return nil, err
	}
	if err := applyCustomer(c, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	out := toCustomerResponse(c)
	return &out, nil
}

// Delete elimina un cliente. Falla con ErrConflict si tiene ventas o reservas.
func (uc *CustomerUseCase) Delete(ctx context.Context, orgID, branchID, id int64) error {
	if _, err := uc.load(ctx, orgID, branchID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, orgID, id)
}

func (uc *CustomerUseCase) load(ctx context.Context, orgID, branchID, id int64) (*entity.Customer, error) {
	c, err := uc.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if c == nil || !inScope(branchID, c.BranchID) {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func applyCustomer(c *entity.Customer, in dto.CustomerRequest) error {
	birthday, err := parseDate(in.Birthday)
	if err != nil {
		return err
	}
	c.Name = strings.TrimSpace(in.Name)
	if c.Name == "" {
		return domain.ErrInvalidInput
	}
	c.BranchID = in.BranchID
	c.Birthday = birthday
	c.ContactNumber = strings.TrimSpace(in.ContactNumber)
	c.Email = strings.TrimSpace(in.Email)
	c.Address = strings.TrimSpace(in.Address)
	return nil
}

func toCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:            c.ID,
		BranchID:      c.BranchID,
		Name:          c.Name,
		Birthday:      formatDate(c.Birthday),
		ContactNumber: c.ContactNumber,
		Email:         c.Email,
		Address:       c.Address,
		CreatedAt:     c.CreatedAt,
	}
}
