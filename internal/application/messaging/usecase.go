package messaging

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stellarmotion-erp/internal/application/dto"
	"github.com/jhoicas/stellarmotion-erp/internal/domain"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con el repo de conversaciones atado a la tx.
type TxRunner interface {
	RunMessaging(ctx context.Context, fn func(conversations repository.ConversationRepository) error) error
}

// UseCase hilos de mensajería entre contactos.
type UseCase struct {
	repo repository.ConversationRepository
	tx   TxRunner
	now  func() time.Time
}

// NewUseCase construye el caso de uso de conversaciones.
func NewUseCase(repo repository.ConversationRepository, tx TxRunner) *UseCase {
	return &UseCase{repo: repo, tx: tx, now: time.Now}
}

// List devuelve los hilos del contacto, más recientes primero.
func (uc *UseCase) List(ctx context.Context, contactoID string) ([]dto.ConversationResponse, error) {
	if contactoID == "" {
		return nil, domain.ErrNoContact
	}
	list, err := uc.repo.ListForContacto(ctx, contactoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConversationResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ConversationResponse{
			ID:              c.ID,
			ParticipantID:   c.OtherContactoID,
			ParticipantName: c.OtherName,
			LastMessage:     c.LastMessage,
			LastMessageAt:   c.LastMessageAt,
			UnreadCount:     c.UnreadCount,
			UpdatedAt:       c.UpdatedAt,
		})
	}
	return out, nil
}

// FindOrCreate busca un hilo de dos participantes o lo crea con ambos participantes
// en una sola transacción. created indica si se dio de alta.
func (uc *UseCase) FindOrCreate(ctx context.Context, contactoID string, in dto.CreateConversationRequest) (*dto.CreateConversationResponse, error) {
	if contactoID == "" {
		return nil, domain.ErrNoContact
	}
	other := strings.TrimSpace(in.OtherContactoID)
	if other == "" {
		return nil, fmt.Errorf("%w: other_contacto_id es obligatorio", domain.ErrInvalidInput)
	}
	if other == contactoID {
		return nil, domain.ErrSelfConversation
	}

	out := &dto.CreateConversationResponse{}
	err := uc.tx.RunMessaging(ctx, func(conversations repository.ConversationRepository) error {
		exists, err := conversations.ContactoExists(ctx, other)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		if err := conversations.LockPair(ctx, contactoID, other, in.SoporteID, in.SolicitudID); err != nil {
			return err
		}
		id, err := conversations.FindBetween(ctx, contactoID, other, in.SoporteID, in.SolicitudID)
		if err != nil {
			return err
		}
		if id != "" {
			out.ConversationID = id
			return nil
		}
		now := uc.now()
		conv := &entity.Conversation{
			ID:          uuid.New().String(),
			SoporteID:   in.SoporteID,
			SolicitudID: in.SolicitudID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := conversations.Create(ctx, conv, []string{contactoID, other}); err != nil {
			return err
		}
		out.ConversationID = conv.ID
		out.Created = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
