package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
)

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo implementación de BranchRepository (usable con pool o tx).
type BranchRepo struct {
	q Querier
}

// NewBranchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

const branchColumns = `id, org_id, name, address, contact_number, created_at`

func scanBranch(row rowScanner) (*entity.Branch, error) {
	var b entity.Branch
	if err := row.Scan(&b.ID, &b.OrgID, &b.Name, &b.Address, &b.ContactNumber, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create persiste una sucursal y asigna su ID.
func (r *BranchRepo) Create(ctx context.Context, b *entity.Branch) error {
	query := `
		INSERT INTO branches (org_id, name, address, contact_number, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, b.OrgID, b.Name, b.Address, b.ContactNumber, b.CreatedAt).Scan(&b.ID); err != nil {
		return fmt.Errorf("insert branch: %w", writeErr(err))
	}
	return nil
}

// GetByID obtiene una sucursal; nil si no existe.
func (r *BranchRepo) GetByID(ctx context.Context, orgID, id int64) (*entity.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE org_id = $1 AND id = $2`
	b, err := scanBranch(r.q.QueryRow(ctx, query, orgID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return b, nil
}

// Update actualiza los datos de la sucursal.
func (r *BranchRepo) Update(ctx context.Context, b *entity.Branch) error {
	query := `UPDATE branches SET name = $3, address = $4, contact_number = $5 WHERE org_id = $1 AND id = $2`
	if err := updateErr(r.q.Exec(ctx, query, b.OrgID, b.ID, b.Name, b.Address, b.ContactNumber)); err != nil {
		return fmt.Errorf("update branch: %w", err)
	}
	return nil
}

// List sucursales de la organización ordenadas por nombre.
func (r *BranchRepo) List(ctx context.Context, orgID int64) ([]*entity.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE org_id = $1 ORDER BY name`
	rows, err := r.q.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// Delete elimina una sucursal sin registros asociados.
func (r *BranchRepo) Delete(ctx context.Context, orgID, id int64) error {
	if err := deleteErr(r.q.Exec(ctx, `DELETE FROM branches WHERE org_id = $1 AND id = $2`, orgID, id)); err != nil {
		return fmt.Errorf("delete branch: %w", err)
	}
	return nil
}
