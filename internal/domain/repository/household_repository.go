package repository

import (
	"context"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
)

// HouseholdRepository búsqueda de solo lectura sobre el padrón de hogares.
type HouseholdRepository interface {
	// SearchSimilar usa similitud de trigramas sobre el nombre; resultados por puntaje descendente.
	SearchSimilar(ctx context.Context, query string, limit int) ([]*entity.Household, error)
}
