package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
)

var (
	_ repository.ServiceRepository         = (*ServiceRepo)(nil)
	_ repository.ServiceCategoryRepository = (*ServiceCategoryRepo)(nil)
)

// ServiceRepo implementación de ServiceRepository.
type ServiceRepo struct {
	q Querier
}

// NewServiceRepository construye el adaptador.
func NewServiceRepository(q Querier) *ServiceRepo {
	return &ServiceRepo{q: q}
}

const serviceColumns = `s.id, s.org_id, s.branch_id, s.category_id, s.name, s.description, s.base_price,
	s.duration_minutes, s.is_active, s.created_at, c.name`

const serviceFrom = ` FROM services s LEFT JOIN service_categories c ON c.id = s.category_id`

func scanService(row rowScanner) (*entity.Service, error) {
	var s entity.Service
	var categoryName *string
	if err := row.Scan(&s.ID, &s.OrgID, &s.BranchID, &s.CategoryID, &s.Name, &s.Description, &s.BasePrice,
		&s.DurationMinutes, &s.IsActive, &s.CreatedAt, &categoryName); err != nil {
		return nil, err
	}
	if s.CategoryID != nil && categoryName != nil {
		s.Category = &entity.ServiceCategory{ID: *s.CategoryID, OrgID: s.OrgID, Name: *categoryName}
	}
	return &s, nil
}

func (r *ServiceRepo) Create(ctx context.Context, s *entity.Service) error {
	query := `
		INSERT INTO services (org_id, branch_id, category_id, name, description, base_price, duration_minutes,
			is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, s.OrgID, s.BranchID, s.CategoryID, s.Name, s.Description, s.BasePrice,
		s.DurationMinutes, s.IsActive, s.CreatedAt).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert service: %w", writeErr(err))
	}
	return nil
}

func (r *ServiceRepo) GetByID(ctx context.Context, orgID, id int64) (*entity.Service, error) {
	s, err := scanService(r.q.QueryRow(ctx, `SELECT `+serviceColumns+serviceFrom+` WHERE s.org_id = $1 AND s.id = $2`, orgID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return s, nil
}

func (r *ServiceRepo) Update(ctx context.Context, s *entity.Service) error {
	query := `
		UPDATE services SET category_id = $3, name = $4, description = $5, base_price = $6,
			duration_minutes = $7, is_active = $8
		WHERE org_id = $1 AND id = $2`
	err := updateErr(r.q.Exec(ctx, query, s.OrgID, s.ID, s.CategoryID, s.Name, s.Description, s.BasePrice,
		s.DurationMinutes, s.IsActive))
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	return nil
}

// List listado paginado; CategoryID 0 no filtra por categoría.
func (r *ServiceRepo) List(ctx context.Context, f repository.ServiceFilter) ([]*entity.Service, int, error) {
	where := ` WHERE s.org_id = $1 AND ($2::bigint = 0 OR s.branch_id IS NULL OR s.branch_id = $2)
		AND ($3::text = '' OR s.name ILIKE $4) AND ($5::bigint = 0 OR s.category_id = $5)`
	args := []any{f.OrgID, f.BranchID, f.Search, likePattern(f.Search), f.CategoryID}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+serviceFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count services: %w", err)
	}
	list, err := r.query(ctx, `SELECT `+serviceColumns+serviceFrom+where+` ORDER BY s.name LIMIT $6 OFFSET $7`,
		append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *ServiceRepo) ListActive(ctx context.Context, orgID, branchID int64) ([]*entity.Service, error) {
	return r.query(ctx, `SELECT `+serviceColumns+serviceFrom+`
		WHERE s.org_id = $1 AND s.is_active AND ($2::bigint = 0 OR s.branch_id IS NULL OR s.branch_id = $2)
		ORDER BY s.name`, orgID, branchID)
}

func (r *ServiceRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Service, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()
	var list []*entity.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *ServiceRepo) Delete(ctx context.Context, orgID, id int64) error {
	if err := deleteErr(r.q.Exec(ctx, `DELETE FROM services WHERE org_id = $1 AND id = $2`, orgID, id)); err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	return nil
}

// ServiceCategoryRepo implementación de ServiceCategoryRepository.
type ServiceCategoryRepo struct {
	q Querier
}

// NewServiceCategoryRepository construye el adaptador.
func NewServiceCategoryRepository(q Querier) *ServiceCategoryRepo {
	return &ServiceCategoryRepo{q: q}
}

func (r *ServiceCategoryRepo) Create(ctx context.Context, c *entity.ServiceCategory) error {
	err := r.q.QueryRow(ctx, `INSERT INTO service_categories (org_id, name, parent_id) VALUES ($1, $2, $3) RETURNING id`,
		c.OrgID, c.Name, c.ParentID).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert service category: %w", writeErr(err))
	}
	return nil
}

func (r *ServiceCategoryRepo) GetByID(ctx context.Context, orgID, id int64) (*entity.ServiceCategory, error) {
	var c entity.ServiceCategory
	err := r.q.QueryRow(ctx, `SELECT id, org_id, name, parent_id FROM service_categories WHERE org_id = $1 AND id = $2`,
		orgID, id).Scan(&c.ID, &c.OrgID, &c.Name, &c.ParentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service category: %w", err)
	}
	return &c, nil
}

func (r *ServiceCategoryRepo) Update(ctx context.Context, c *entity.ServiceCategory) error {
	err := updateErr(r.q.Exec(ctx, `UPDATE service_categories SET name = $3, parent_id = $4 WHERE org_id = $1 AND id = $2`,
		c.OrgID, c.ID, c.Name, c.ParentID))
	if err != nil {
		return fmt.Errorf("update service category: %w", err)
	}
	return nil
}

func (r *ServiceCategoryRepo) List(ctx context.Context, orgID int64) ([]*entity.ServiceCategory, error) {
	rows, err := r.q.Query(ctx, `SELECT id, org_id, name, parent_id FROM service_categories WHERE org_id = $1 ORDER BY name`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list service categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.ServiceCategory
	for rows.Next() {
		var c entity.ServiceCategory
		if err := rows.Scan(&c.ID, &c.OrgID, &c.Name, &c.ParentID); err != nil {
			return nil, fmt.Errorf("scan service category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete falla con conflicto si la categoría tiene hijas o servicios.
func (r *ServiceCategoryRepo) Delete(ctx context.Context, orgID, id int64) error {
	if err := deleteErr(r.q.Exec(ctx, `DELETE FROM service_categories WHERE org_id = $1 AND id = $2`, orgID, id)); err != nil {
		return fmt.Errorf("delete service category: %w", err)
	}
	return nil
}
