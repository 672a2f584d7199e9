package repository

import (
	"context"

	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
)

// ProductFilter filtros del listado de soportes.
type ProductFilter struct {
	Category string
	Query    string
	City     string
	Featured *bool
	Limit    int
}

// ProductRepository puerto de persistencia de soportes publicados.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, error)
}
