package repository

import (
	"context"

	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
)

// OwnerRepository puerto de perfiles de propietario.
type OwnerRepository interface {
	// Upsert inserta o actualiza por user_id; created indica si fue alta.
	Upsert(ctx context.Context, owner *entity.Owner) (created bool, err error)
	GetByUserID(ctx context.Context, userID string) (*entity.Owner, error)
}
