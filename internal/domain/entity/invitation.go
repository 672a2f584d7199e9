package entity

import "time"

// Estados de una invitación.
const (
	InvitationPendiente = "pendiente"
	InvitationUsado     = "usado"
	InvitationExpirado  = "expirado"
	InvitationRevocado  = "revocado"
)

// ValidInvitationStatus indica si s es un estado conocido.
func ValidInvitationStatus(s string) bool {
	switch s {
	case InvitationPendiente, InvitationUsado, InvitationExpirado, InvitationRevocado:
		return true
	}
	return false
}

// Invitation enlace de un solo uso para alta de usuario o cambio de contraseña.
type Invitation struct {
	ID              string
	Email           string
	Rol             string // id o nombre del rol asignado al registrarse
	Token           string
	Estado          string
	CambioPassword  bool
	Enlace          string
	FechaCreacion   time.Time
	FechaExpiracion time.Time
	FechaUso        *time.Time
}

// Expired indica si la invitación venció respecto a now.
func (i *Invitation) Expired(now time.Time) bool {
	return !now.Before(i.FechaExpiracion)
}
