package dto

import "time"

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest alta de usuario consumiendo una invitación.
type RegisterRequest struct {
	Token    string `json:"token" validate:"required,len=64,hexadecimal"`
	Email    string `json:"email" validate:"required,email"`
	Nombre   string `json:"nombre" validate:"required,max=120"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// ResetPasswordRequest cambio de contraseña con enlace de invitación.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required,len=64,hexadecimal"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UserResponse usuario sin datos sensibles.
type UserResponse struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Nombre       string     `json:"nombre"`
	RolID        string     `json:"rol_id,omitempty"`
	ContactoID   string     `json:"contacto_id,omitempty"`
	Activo       bool       `json:"activo"`
	UltimoAcceso *time.Time `json:"ultimoAcceso,omitempty"`
}

// LoginResponse respuesta del login; el token viaja en la cookie de sesión.
type LoginResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"-"`
}
