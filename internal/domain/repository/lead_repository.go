package repository

import (
	"context"

	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
)

// LeadFilter filtros del listado de leads. Cadenas vacías no filtran.
type LeadFilter struct {
	Query   string
	Sector  string
	Interes string
	Origen  string
	Trash   bool // true = papelera (deleted_at IS NOT NULL)
	Limit   int
	Offset  int
}

// LeadRepository puerto de persistencia de leads.
type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	GetByID(ctx context.Context, id string) (*entity.Lead, error)
	Update(ctx context.Context, lead *entity.Lead) error
	List(ctx context.Context, f LeadFilter) ([]*entity.Lead, int, error)
	// SoftDelete marca deleted_at en los leads activos; devuelve cuántos cambiaron.
	SoftDelete(ctx context.Context, ids []string) (int64, error)
	// Restore limpia deleted_at en los leads de la papelera; devuelve cuántos cambiaron.
	Restore(ctx context.Context, ids []string) (int64, error)
}
