package dto

// APIResponse envoltura estándar de todas las respuestas: bandera de éxito,
// mensaje legible y, según el caso, datos, código de error y detalle por campo.
type APIResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    any                 `json:"data,omitempty"`
	Code    string              `json:"code,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Pagination metadatos de página en listados.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int64 `json:"last_page"`
}

// NewPagination calcula los metadatos a partir del total y el tamaño de página.
func NewPagination(page, perPage int, total int64) Pagination {
	lastPage := total / int64(perPage)
	if total%int64(perPage) != 0 || lastPage == 0 {
		lastPage++
	}
	return Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}
}
