package dto

// ErrorResponse cuerpo de error HTTP: mensaje legible y código para el cliente.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

// Pagination metadatos de página (page/limit/total) de los listados.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination calcula totalPages.
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// CountResponse resultado de operaciones masivas.
type CountResponse struct {
	Count int64 `json:"count"`
}

// IDsRequest cuerpo con una lista de ids.
type IDsRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}
