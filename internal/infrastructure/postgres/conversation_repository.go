package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/repository"
)

var _ repository.ConversationRepository = (*ConversationRepo)(nil)

// ConversationRepo hilos de mensajería entre contactos.
type ConversationRepo struct {
	q Querier
}

// NewConversationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConversationRepository(q Querier) *ConversationRepo {
	return &ConversationRepo{q: q}
}

// ListForContacto resume los hilos del contacto: el otro participante, último mensaje y no leídos.
func (r *ConversationRepo) ListForContacto(ctx context.Context, contactoID string) ([]*entity.ConversationSummary, error) {
	rows, err := r.q.Query(ctx, `
		SELECT c.id::text,
		       COALESCE(other.contacto_id::text, ''),
		       COALESCE(oc.nombre, ''),
		       COALESCE(last.body, ''),
		       last.created_at,
		       (SELECT COUNT(*) FROM messages m
		         WHERE m.conversation_id = c.id
		           AND m.sender_id <> $1
		           AND (me.last_read_at IS NULL OR m.created_at > me.last_read_at)),
		       c.updated_at
		FROM conversation_participants me
		JOIN conversations c ON c.id = me.conversation_id
		LEFT JOIN conversation_participants other
		       ON other.conversation_id = c.id AND other.contacto_id <> me.contacto_id
		LEFT JOIN contactos oc ON oc.id = other.contacto_id
		LEFT JOIN LATERAL (
		       SELECT body, created_at FROM messages
		       WHERE conversation_id = c.id ORDER BY created_at DESC LIMIT 1
		) last ON TRUE
		WHERE me.contacto_id = $1
		ORDER BY c.updated_at DESC`, contactoID)
	if err != nil {
		return nil, fmt.Errorf("list conversaciones: %w", err)
	}
	defer rows.Close()
	var list []*entity.ConversationSummary
	for rows.Next() {
		var s entity.ConversationSummary
		if err := rows.Scan(&s.ID, &s.OtherContactoID, &s.OtherName, &s.LastMessage, &s.LastMessageAt,
			&s.UnreadCount, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan conversación: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// LockPair toma un advisory lock de transacción sobre el par de contactos y el soporte/solicitud.
func (r *ConversationRepo) LockPair(ctx context.Context, a, b, soporteID, solicitudID string) error {
	if b < a {
		a, b = b, a
	}
	key := strings.Join([]string{"conversacion", a, b, soporteID, solicitudID}, ":")
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return fmt.Errorf("advisory lock conversación: %w", err)
	}
	return nil
}

// FindBetween busca un hilo con exactamente los contactos a y b para el mismo soporte/solicitud.
func (r *ConversationRepo) FindBetween(ctx context.Context, a, b, soporteID, solicitudID string) (string, error) {
	var id string
	err := r.q.QueryRow(ctx, `
		SELECT c.id::text FROM conversations c
		WHERE EXISTS (SELECT 1 FROM conversation_participants p WHERE p.conversation_id = c.id AND p.contacto_id = $1)
		  AND EXISTS (SELECT 1 FROM conversation_participants p WHERE p.conversation_id = c.id AND p.contacto_id = $2)
		  AND (SELECT COUNT(*) FROM conversation_participants p WHERE p.conversation_id = c.id) = 2
		  AND c.soporte_id IS NOT DISTINCT FROM $3::uuid
		  AND c.solicitud_id IS NOT DISTINCT FROM $4::uuid
		ORDER BY c.created_at
		LIMIT 1`, a, b, nullIfEmpty(soporteID), nullIfEmpty(solicitudID)).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("buscar conversación: %w", err)
	}
	return id, nil
}

// Create inserta el hilo y sus participantes. Llamar dentro de RunMessaging.
func (r *ConversationRepo) Create(ctx context.Context, conv *entity.Conversation, participants []string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO conversations (id, soporte_id, solicitud_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		conv.ID, nullIfEmpty(conv.SoporteID), nullIfEmpty(conv.SolicitudID), conv.CreatedAt, conv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert conversación: %w", err)
	}
	for _, contactoID := range participants {
		if _, err := r.q.Exec(ctx, `
			INSERT INTO conversation_participants (conversation_id, contacto_id, last_read_at)
			VALUES ($1, $2, NULL)`, conv.ID, contactoID); err != nil {
			return fmt.Errorf("insert participante: %w", err)
		}
	}
	return nil
}

// ContactoExists indica si el contacto existe.
func (r *ConversationRepo) ContactoExists(ctx context.Context, contactoID string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM contactos WHERE id::text = $1)`, contactoID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("existe contacto: %w", err)
	}
	return ok, nil
}
