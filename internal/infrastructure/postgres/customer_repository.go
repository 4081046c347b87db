package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, org_id, branch_id, name, birthday, contact_number, email, address, created_at`

func scanCustomer(row rowScanner) (*entity.Customer, error) {
	var c entity.Customer
	if err := row.Scan(&c.ID, &c.OrgID, &c.BranchID, &c.Name, &c.Birthday, &c.ContactNumber, &c.Email, &c.Address, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (org_id, branch_id, name, birthday, contact_number, email, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, c.OrgID, c.BranchID, c.Name, c.Birthday, c.ContactNumber, c.Email, c.Address, c.CreatedAt).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert customer: %w", writeErr(err))
	}
	return nil
}

// GetByID obtiene un cliente por ID; nil si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, orgID, id int64) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE org_id = $1 AND id = $2`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, orgID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// Update actualiza un cliente.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers SET branch_id = $3, name = $4, birthday = $5, contact_number = $6, email = $7, address = $8
		WHERE org_id = $1 AND id = $2`
	if err := updateErr(r.q.Exec(ctx, query, c.OrgID, c.ID, c.BranchID, c.Name, c.Birthday, c.ContactNumber, c.Email, c.Address)); err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// List lista clientes con paginación; Search filtra por nombre.
func (r *CustomerRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Customer, int, error) {
	where := ` WHERE org_id = $1 AND ($2::bigint = 0 OR branch_id = $2) AND ($3::text = '' OR name ILIKE $4)`
	args := []any{f.OrgID, f.BranchID, f.Search, likePattern(f.Search)}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM customers`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+customerColumns+` FROM customers`+where+` ORDER BY name LIMIT $5 OFFSET $6`,
		append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// Delete elimina un cliente por ID. Con ventas o reservas asociadas devuelve ErrConflict.
func (r *CustomerRepo) Delete(ctx context.Context, orgID, id int64) error {
	if err := deleteErr(r.q.Exec(ctx, `DELETE FROM customers WHERE org_id = $1 AND id = $2`, orgID, id)); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}
