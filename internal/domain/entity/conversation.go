package entity

import "time"

// Conversation hilo de mensajes entre dos contactos.
type Conversation struct {
	ID          string
	SoporteID   string
	SolicitudID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Participant participante de una conversación.
type Participant struct {
	ConversationID string
	ContactoID     string
	LastReadAt     *time.Time
}

// ConversationSummary vista de un hilo desde la perspectiva de un contacto.
type ConversationSummary struct {
	ID              string
	OtherContactoID string
	OtherName       string
	LastMessage     string
	LastMessageAt   *time.Time
	UnreadCount     int
	UpdatedAt       time.Time
}
