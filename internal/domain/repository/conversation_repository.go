package repository

import (
	"context"

	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
)

// ConversationRepository puerto de hilos de mensajería.
type ConversationRepository interface {
	ListForContacto(ctx context.Context, contactoID string) ([]*entity.ConversationSummary, error)
	// LockPair serializa hasta el fin de la transacción el alta de hilos entre a y b
	// para el mismo soporte/solicitud, sin importar el orden de a y b.
	LockPair(ctx context.Context, a, b, soporteID, solicitudID string) error
	// FindBetween busca un hilo de dos participantes (opcionalmente ligado a un soporte o solicitud).
	FindBetween(ctx context.Context, a, b, soporteID, solicitudID string) (string, error)
	Create(ctx context.Context, conv *entity.Conversation, participants []string) error
	ContactoExists(ctx context.Context, contactoID string) (bool, error)
}
