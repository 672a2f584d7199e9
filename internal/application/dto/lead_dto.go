package dto

import "time"

// LeadRequest alta/edición de lead.
type LeadRequest struct {
	Nombre   string `json:"nombre" validate:"required,max=200"`
	Empresa  string `json:"empresa" validate:"max=200"`
	Email    string `json:"email" validate:"omitempty,email"`
	Telefono string `json:"telefono" validate:"max=50"`
	Ciudad   string `json:"ciudad" validate:"max=100"`
	Sector   string `json:"sector" validate:"max=100"`
	Interes  string `json:"interes" validate:"max=100"`
	Origen   string `json:"origen" validate:"max=100"`
}

// LeadListQuery parámetros de listado (query string).
type LeadListQuery struct {
	Query   string `query:"query"`
	Sector  string `query:"sector"`
	Interes string `query:"interes"`
	Origen  string `query:"origen"`
	Page    int    `query:"page"`
	Limit   int    `query:"limit"`
}

// LeadResponse lead serializado.
type LeadResponse struct {
	ID        string     `json:"id"`
	Nombre    string     `json:"nombre"`
	Empresa   string     `json:"empresa"`
	Email     string     `json:"email"`
	Telefono  string     `json:"telefono"`
	Ciudad    string     `json:"ciudad"`
	Sector    string     `json:"sector"`
	Interes   string     `json:"interes"`
	Origen    string     `json:"origen"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// LeadListResponse página de leads.
type LeadListResponse struct {
	Data       []LeadResponse `json:"data"`
	Pagination Pagination     `json:"pagination"`
}
