package dto

// CompleteOwnerRequest POST /api/owners/complete.
type CompleteOwnerRequest struct {
	UserID         string `json:"user_id"`
	TipoContacto   string `json:"tipo_contacto"`
	NombreContacto string `json:"nombre_contacto"`
	Empresa        string `json:"empresa"`
	Email          string `json:"email"`
	Telefono       string `json:"telefono"`
	Pais           string `json:"pais"`
	Ciudad         string `json:"ciudad"`
	Direccion      string `json:"direccion"`
	NIT            string `json:"nit"`
	SitioWeb       string `json:"sitio_web"`
}

// OwnerResponse perfil de propietario.
type OwnerResponse struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	TipoContacto   string `json:"tipo_contacto"`
	NombreContacto string `json:"nombre_contacto,omitempty"`
	Empresa        string `json:"empresa,omitempty"`
	Email          string `json:"email"`
	Telefono       string `json:"telefono"`
	Pais           string `json:"pais"`
	Ciudad         string `json:"ciudad,omitempty"`
	Direccion      string `json:"direccion,omitempty"`
	NIT            string `json:"nit,omitempty"`
	SitioWeb       string `json:"sitio_web,omitempty"`
}

// CompleteOwnerResponse resultado del upsert.
type CompleteOwnerResponse struct {
	Owner   OwnerResponse `json:"owner"`
	Created bool          `json:"created"`
}
