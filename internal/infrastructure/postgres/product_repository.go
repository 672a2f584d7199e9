package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo soportes publicados en el marketplace.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create inserta un soporte.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO soportes (id, title, description, category, type, city, country, price_per_month,
			dimensions, width_m, height_m, area_m2, lat, lng, google_maps_link, images, featured, status,
			owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
		p.ID, p.Title, p.Description, p.Category, p.Type, p.City, p.Country, p.PricePerMonth,
		p.Dimensions, p.WidthM, p.HeightM, p.AreaM2, p.Lat, p.Lng, p.GoogleMapsLink, p.Images, p.Featured,
		p.Status, nullIfEmpty(p.OwnerID), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert soporte: %w", err)
	}
	return nil
}

// List filtra por categoría, ciudad, destacado y texto libre (título o descripción).
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.City != "" {
		add("city ILIKE $%d", escapeLike(f.City))
	}
	if f.Featured != nil {
		add("featured = $%d", *f.Featured)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		add("(title ILIKE $%[1]d OR description ILIKE $%[1]d)", containsPattern(q))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, f.Limit)
	sql := fmt.Sprintf(`
		SELECT id::text, title, description, category, type, city, country, price_per_month, dimensions,
			width_m, height_m, area_m2, lat, lng, google_maps_link, images, featured, status,
			COALESCE(owner_id::text, ''), created_at, updated_at
		FROM soportes%s
		ORDER BY featured DESC, created_at DESC
		LIMIT $%d`, where, len(args))

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list soportes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.Type, &p.City, &p.Country,
			&p.PricePerMonth, &p.Dimensions, &p.WidthM, &p.HeightM, &p.AreaM2, &p.Lat, &p.Lng,
			&p.GoogleMapsLink, &p.Images, &p.Featured, &p.Status, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan soporte: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
