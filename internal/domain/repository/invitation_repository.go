package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
)

// InvitationRepository puerto de persistencia de invitaciones.
type InvitationRepository interface {
	// LockEmail serializa las operaciones sobre un email hasta el fin de la transacción.
	LockEmail(ctx context.Context, email string) error
	FindPendingByEmail(ctx context.Context, email string) (*entity.Invitation, error)
	Create(ctx context.Context, inv *entity.Invitation) error
	GetByID(ctx context.Context, id string) (*entity.Invitation, error)
	GetByTokenForUpdate(ctx context.Context, token string) (*entity.Invitation, error)
	List(ctx context.Context, estado string, limit int) ([]*entity.Invitation, error)
	UpdateStatus(ctx context.Context, id, estado string, fechaUso *time.Time) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	ExpirePending(ctx context.Context, now time.Time) (int64, error)
}
