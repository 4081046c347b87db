package usecase

import (
	"strings"
	"time"

	"github.com/jhoicas/sucursales-pos/internal/application/dto"
	"github.com/jhoicas/sucursales-pos/internal/domain"
	"github.com/jhoicas/sucursales-pos/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// parseDate convierte "YYYY-MM-DD" en fecha; vacío = nil.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func toFilter(orgID int64, q dto.ListQuery) repository.ListFilter {
	q.DefaultPage()
	return repository.ListFilter{
		OrgID:    orgID,
		BranchID: q.BranchID,
		Search:   strings.TrimSpace(q.Search),
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
}

func pageOf(f repository.ListFilter, total int) dto.PageResponse {
	return dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total}
}

// inScope indica si una fila de branchID es visible para el alcance de sucursal del usuario (0 = toda la organización).
func inScope(scope, branchID int64) bool {
	return scope == 0 || scope == branchID
}
