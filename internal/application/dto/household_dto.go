package dto

// HouseholdResponse resultado de la búsqueda en el padrón de hogares.
type HouseholdResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Purok      string  `json:"purok"`
	Sitio      string  `json:"sitio"`
	Barangay   string  `json:"barangay"`
	Address    string  `json:"address"`
	Similarity float64 `json:"similarity"`
}
