package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrUserNotFound     = errors.New("usuario no encontrado")
	ErrEmailExists      = errors.New("el email ya está registrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrExpired          = errors.New("el recurso ha expirado")
	ErrPendingInvite    = errors.New("ya existe una invitación pendiente para este email")
	ErrInvalidAmount    = errors.New("monto inválido")
	ErrNotPayable       = errors.New("la factura no admite pagos en su estado actual")
	ErrSelfConversation = errors.New("no puedes iniciar una conversación contigo mismo")
	ErrNoContact        = errors.New("el usuario no tiene contacto asociado")
)
