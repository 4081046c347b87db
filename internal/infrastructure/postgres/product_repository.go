package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, org_id, branch_id, name, description, category, selling_price, cost, type, unit,
	reorder_point, is_active, created_at`

func scanProduct(row rowScanner) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.OrgID, &p.BranchID, &p.Name, &p.Description, &p.Category, &p.SellingPrice, &p.Cost,
		&p.Type, &p.Unit, &p.ReorderPoint, &p.IsActive, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (org_id, branch_id, name, description, category, selling_price, cost, type, unit,
			reorder_point, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, p.OrgID, p.BranchID, p.Name, p.Description, p.Category, p.SellingPrice, p.Cost,
		p.Type, p.Unit, p.ReorderPoint, p.IsActive, p.CreatedAt).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert product: %w", writeErr(err))
	}
	return nil
}

// GetByID obtiene un producto; nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, orgID, id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE org_id = $1 AND id = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, orgID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza un producto (el stock no vive en esta tabla).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $3, description = $4, category = $5, selling_price = $6, cost = $7,
			type = $8, unit = $9, reorder_point = $10, is_active = $11
		WHERE org_id = $1 AND id = $2`
	err := updateErr(r.q.Exec(ctx, query, p.OrgID, p.ID, p.Name, p.Description, p.Category, p.SellingPrice, p.Cost,
		p.Type, p.Unit, p.ReorderPoint, p.IsActive))
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List listado paginado. BranchID filtra productos de la sucursal o globales (branch_id NULL).
func (r *ProductRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Product, int, error) {
	where := ` WHERE org_id = $1 AND ($2::bigint = 0 OR branch_id IS NULL OR branch_id = $2)
		AND ($3::text = '' OR name ILIKE $4)`
	args := []any{f.OrgID, f.BranchID, f.Search, likePattern(f.Search)}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	list, err := r.query(ctx, `SELECT `+productColumns+` FROM products`+where+` ORDER BY name LIMIT $5 OFFSET $6`,
		append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListActive productos activos visibles desde la sucursal.
func (r *ProductRepo) ListActive(ctx context.Context, orgID, branchID int64) ([]*entity.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products
		WHERE org_id = $1 AND is_active AND ($2::bigint = 0 OR branch_id IS NULL OR branch_id = $2)
		ORDER BY name`, orgID, branchID)
}

func (r *ProductRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto sin movimientos ni ventas.
func (r *ProductRepo) Delete(ctx context.Context, orgID, id int64) error {
	if err := deleteErr(r.q.Exec(ctx, `DELETE FROM products WHERE org_id = $1 AND id = $2`, orgID, id)); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
