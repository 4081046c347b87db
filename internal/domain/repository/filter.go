package repository

// ListFilter filtros comunes de los listados paginados.
// BranchID 0 = todas las sucursales de la organización.
type ListFilter struct {
	OrgID    int64
	BranchID int64
	Search   string // ILIKE sobre la columna de búsqueda de cada listado
	Limit    int
	Offset   int
}
