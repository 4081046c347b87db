package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/sucursales-pos/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, "23505")
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return hasCode(err, "23503")
}

func hasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}

// deleteErr traduce el error de un DELETE: 23503 -> ErrConflict; 0 filas -> ErrNotFound.
func deleteErr(tag pgconn.CommandTag, err error) error {
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// updateErr traduce el error de un UPDATE: 23505 -> ErrDuplicate; 23503 -> ErrInvalidInput; 0 filas -> ErrNotFound.
func updateErr(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return writeErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// writeErr traduce errores de INSERT/UPDATE a errores de dominio cuando aplica.
func writeErr(err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return domain.ErrInvalidInput
	}
	return err
}

// likePattern arma el patrón ILIKE escapando los comodines del usuario.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
