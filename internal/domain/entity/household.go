package entity

// Household registro de hogar del padrón civil (solo lectura desde este panel).
type Household struct {
	ID         int64
	Name       string
	Purok      string
	Sitio      string
	Barangay   string
	Address    string
	LocationID *int64
	Similarity float64 // puntaje de la búsqueda por similitud
}
