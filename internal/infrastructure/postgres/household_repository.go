package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/sucursales-pos/internal/domain/entity"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
)

var _ repository.HouseholdRepository = (*HouseholdRepo)(nil)

// HouseholdRepo búsqueda en el padrón de hogares vía pg_trgm.
type HouseholdRepo struct {
	q Querier
}

// NewHouseholdRepository construye el adaptador.
func NewHouseholdRepository(q Querier) *HouseholdRepo {
	return &HouseholdRepo{q: q}
}

// SearchSimilar delega en la función search_households_similar (ver migrations).
func (r *HouseholdRepo) SearchSimilar(ctx context.Context, query string, limit int) ([]*entity.Household, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, purok, sitio, barangay, address, location_id, score
		FROM search_households_similar($1, $2)`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search households: %w", err)
	}
	defer rows.Close()
	list := []*entity.Household{}
	for rows.Next() {
		var h entity.Household
		var score float32
		if err := rows.Scan(&h.ID, &h.Name, &h.Purok, &h.Sitio, &h.Barangay, &h.Address, &h.LocationID, &score); err != nil {
			return nil, fmt.Errorf("scan household: %w", err)
		}
		h.Similarity = float64(score)
		list = append(list, &h)
	}
	return list, rows.Err()
}
