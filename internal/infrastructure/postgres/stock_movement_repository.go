package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de stock sobre product_stocks (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `ps.id, ps.org_id, ps.branch_id, ps.product_id, ps.transaction_id, ps.type, ps.quantity,
	ps.remarks, ps.transaction_date, ps.expiration_date, ps.created_at, COALESCE(p.name, '')`

const movementFrom = ` FROM product_stocks ps LEFT JOIN products p ON p.id = ps.product_id`

func scanMovement(row rowScanner) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var productName string
	if err := row.Scan(&m.ID, &m.OrgID, &m.BranchID, &m.ProductID, &m.TransactionID, &m.Type, &m.Quantity,
		&m.Remarks, &m.TransactionDate, &m.ExpirationDate, &m.CreatedAt, &productName); err != nil {
		return nil, err
	}
	m.Product = &entity.Product{ID: m.ProductID, Name: productName}
	return &m, nil
}

// Create agrega una entrada al libro.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO product_stocks (org_id, branch_id, product_id, transaction_id, type, quantity, remarks,
			transaction_date, expiration_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, m.OrgID, m.BranchID, m.ProductID, m.TransactionID, m.Type, m.Quantity, m.Remarks,
		m.TransactionDate, m.ExpirationDate, m.CreatedAt).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", writeErr(err))
	}
	return nil
}

// GetByID obtiene una entrada; nil si no existe.
func (r *StockMovementRepo) GetByID(ctx context.Context, orgID, id int64) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+movementFrom+` WHERE ps.org_id = $1 AND ps.id = $2`, orgID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// ListByProducts movimientos de los productos indicados agrupados por producto.
func (r *StockMovementRepo) ListByProducts(ctx context.Context, orgID, branchID int64, productIDs []int64) (map[int64][]*entity.StockMovement, error) {
	out := make(map[int64][]*entity.StockMovement, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	query := `SELECT ` + movementColumns + movementFrom + `
		WHERE ps.org_id = $1 AND ps.product_id = ANY($2) AND ($3::bigint = 0 OR ps.branch_id = $3)`
	rows, err := r.q.Query(ctx, query, orgID, productIDs, branchID)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out[m.ProductID] = append(out[m.ProductID], m)
	}
	return out, rows.Err()
}

// List listado paginado, más recientes primero; Search filtra por nombre de producto.
func (r *StockMovementRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.StockMovement, int, error) {
	where := ` WHERE ps.org_id = $1 AND ($2::bigint = 0 OR ps.branch_id = $2) AND ($3::text = '' OR p.name ILIKE $4)`
	args := []any{f.OrgID, f.BranchID, f.Search, likePattern(f.Search)}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+movementFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock movements: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+movementColumns+movementFrom+where+` ORDER BY ps.id DESC LIMIT $5 OFFSET $6`,
		append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

// Delete corrección manual de una entrada.
func (r *StockMovementRepo) Delete(ctx context.Context, orgID, id int64) error {
	if err := deleteErr(r.q.Exec(ctx, `DELETE FROM product_stocks WHERE org_id = $1 AND id = $2`, orgID, id)); err != nil {
		return fmt.Errorf("delete stock movement: %w", err)
	}
	return nil
}
