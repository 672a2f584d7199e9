package entity

import "time"

// RolOwner nombre del rol que se asigna al completar el perfil de propietario.
const RolOwner = "owner"

// User representa un usuario del ERP (tabla usuarios).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt; nunca se serializa
	Nombre       string
	RolID        string // vacío = sin rol, sin permisos
	ContactoID   string // contacto asociado (mensajería, marketplace)
	Activo       bool
	UltimoAcceso *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole indica si el usuario tiene un rol asignado.
func (u *User) HasRole() bool {
	return u != nil && u.RolID != ""
}
