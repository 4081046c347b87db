package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sucursales-pos/internal/domain"
	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `u.id, u.user_id::text, u.org_id, u.branch_id, u.name, u.email, u.position, u.type,
	u.is_active, u.password_hash, u.created_at, COALESCE(b.name, '')`

const userFrom = ` FROM users u LEFT JOIN branches b ON b.id = u.branch_id`

func scanUser(row rowScanner) (*entity.User, error) {
	var u entity.User
	var branchName string
	if err := row.Scan(&u.ID, &u.AuthUserID, &u.OrgID, &u.BranchID, &u.Name, &u.Email, &u.Position, &u.Type,
		&u.IsActive, &u.PasswordHash, &u.CreatedAt, &branchName); err != nil {
		return nil, err
	}
	if branchName != "" {
		u.Branch = &entity.Branch{ID: u.BranchID, OrgID: u.OrgID, Name: branchName}
	}
	return &u, nil
}

// Create persiste un usuario. Email repetido -> ErrEmailAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (user_id, org_id, branch_id, name, email, position, type, is_active, password_hash, created_at)
		VALUES ($1::text::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, u.AuthUserID, u.OrgID, u.BranchID, u.Name, u.Email, u.Position, u.Type,
		u.IsActive, u.PasswordHash, u.CreatedAt).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", writeErr(err))
	}
	return nil
}

func (r *UserRepo) getOne(ctx context.Context, where string, args ...any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+userFrom+` WHERE `+where, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByID obtiene un usuario de la organización; nil si no existe.
func (r *UserRepo) GetByID(ctx context.Context, orgID, id int64) (*entity.User, error) {
	return r.getOne(ctx, `u.org_id = $1 AND u.id = $2`, orgID, id)
}

// GetByEmail obtiene un usuario por email (sin distinguir mayúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `lower(u.email) = lower($1)`, email)
}

// GetByAuthUserID obtiene un usuario por el UUID de su cuenta de acceso.
func (r *UserRepo) GetByAuthUserID(ctx context.Context, authUserID string) (*entity.User, error) {
	return r.getOne(ctx, `u.user_id::text = $1`, authUserID)
}

// Update actualiza los datos editables (no email ni contraseña).
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users SET name = $3, position = $4, type = $5, branch_id = $6, is_active = $7
		WHERE org_id = $1 AND id = $2`
	if err := updateErr(r.q.Exec(ctx, query, u.OrgID, u.ID, u.Name, u.Position, u.Type, u.BranchID, u.IsActive)); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// UpdatePassword reemplaza el hash de la contraseña.
func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	if err := updateErr(r.q.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// List listado paginado; Search filtra por nombre (ILIKE).
func (r *UserRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.User, int, error) {
	where := ` WHERE u.org_id = $1 AND ($2::bigint = 0 OR u.branch_id = $2) AND ($3::text = '' OR u.name ILIKE $4)`
	args := []any{f.OrgID, f.BranchID, f.Search, likePattern(f.Search)}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+userFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+userFrom+where+` ORDER BY u.name LIMIT $5 OFFSET $6`,
		append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}

// Delete elimina un usuario.
func (r *UserRepo) Delete(ctx context.Context, orgID, id int64) error {
	if err := deleteErr(r.q.Exec(ctx, `DELETE FROM users WHERE org_id = $1 AND id = $2`, orgID, id)); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
