package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/sucursales-pos/internal/application/dto"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
)

const (
	householdDefaultLimit = 20
	householdMaxLimit     = 100
)

// HouseholdUseCase búsqueda por similitud en el padrón de hogares.
type HouseholdUseCase struct {
	repo repository.HouseholdRepository
}

// NewHouseholdUseCase construye el caso de uso.
func NewHouseholdUseCase(repo repository.HouseholdRepository) *HouseholdUseCase {
	return &HouseholdUseCase{repo: repo}
}

// Search devuelve los hogares más parecidos a query. Query vacío = sin resultados.
func (uc *HouseholdUseCase) Search(ctx context.Context, query string, limit int) ([]dto.HouseholdResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []dto.HouseholdResponse{}, nil
	}
	if limit <= 0 {
		limit = householdDefaultLimit
	}
	if limit > householdMaxLimit {
		limit = householdMaxLimit
	}
	list, err := uc.repo.SearchSimilar(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HouseholdResponse, 0, len(list))
	for _, h := range list {
		out = append(out, dto.HouseholdResponse{
			ID:         h.ID,
			Name:       h.Name,
			Purok:      h.Purok,
			Sitio:      h.Sitio,
			Barangay:   h.Barangay,
			Address:    h.Address,
			Similarity: h.Similarity,
		})
	}
	return out, nil
}
