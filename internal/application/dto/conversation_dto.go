package dto

import "time"

// ConversationResponse resumen de un hilo para el listado.
type ConversationResponse struct {
	ID              string     `json:"id"`
	ParticipantID   string     `json:"participant_id"`
	ParticipantName string     `json:"participant_name"`
	LastMessage     string     `json:"lastMessage"`
	LastMessageAt   *time.Time `json:"lastMessageAt,omitempty"`
	UnreadCount     int        `json:"unreadCount"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CreateConversationRequest POST /api/conversations.
type CreateConversationRequest struct {
	OtherContactoID string `json:"other_contacto_id" validate:"required"`
	SoporteID       string `json:"soporte_id" validate:"omitempty,uuid"`
	SolicitudID     string `json:"solicitud_id" validate:"omitempty,uuid"`
}

// CreateConversationResponse hilo encontrado o creado.
type CreateConversationResponse struct {
	ConversationID string `json:"conversation_id"`
	Created        bool   `json:"created"`
}
