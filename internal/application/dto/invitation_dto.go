package dto

import "time"

// CreateInvitationRequest POST /api/ajustes/invitaciones.
type CreateInvitationRequest struct {
	Email          string `json:"email"`
	Rol            string `json:"rol"`
	HorasValidez   int    `json:"horasValidez" validate:"required,gt=0"`
	CambioPassword bool   `json:"cambioPassword"`
}

// UpdateInvitationRequest PUT /api/ajustes/invitaciones.
type UpdateInvitationRequest struct {
	ID     string `json:"id" validate:"required"`
	Estado string `json:"estado" validate:"required,oneof=pendiente usado expirado revocado"`
}

// DeleteInvitationRequest DELETE /api/ajustes/invitaciones.
type DeleteInvitationRequest struct {
	ID string `json:"id"`
}

// InvitationResponse invitación con el nombre del rol resuelto.
type InvitationResponse struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	Rol             string     `json:"rol"`
	RolNombre       string     `json:"rolNombre"`
	Token           string     `json:"token"`
	Estado          string     `json:"estado"`
	CambioPassword  bool       `json:"cambioPassword"`
	Enlace          string     `json:"enlace"`
	FechaCreacion   time.Time  `json:"fechaCreacion"`
	FechaExpiracion time.Time  `json:"fechaExpiracion"`
	FechaUso        *time.Time `json:"fechaUso,omitempty"`
}

// CreateInvitationResponse invitación creada y su enlace.
type CreateInvitationResponse struct {
	Invitacion InvitationResponse `json:"invitacion"`
	Enlace     string             `json:"enlace"`
}
