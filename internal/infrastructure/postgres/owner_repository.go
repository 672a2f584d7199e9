package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/repository"
)

var _ repository.OwnerRepository = (*OwnerRepo)(nil)

// OwnerRepo perfiles de propietario.
type OwnerRepo struct {
	q Querier
}

// NewOwnerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOwnerRepository(q Querier) *OwnerRepo {
	return &OwnerRepo{q: q}
}

// Upsert inserta o actualiza el perfil por user_id.
// xmax = 0 distingue una inserción de una actualización en ON CONFLICT.
func (r *OwnerRepo) Upsert(ctx context.Context, o *entity.Owner) (bool, error) {
	var inserted bool
	err := r.q.QueryRow(ctx, `
		INSERT INTO owners (id, user_id, tipo_contacto, nombre_contacto, empresa, email, telefono, pais,
			ciudad, direccion, nit, sitio_web, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
		ON CONFLICT (user_id) DO UPDATE SET
			tipo_contacto = EXCLUDED.tipo_contacto,
			nombre_contacto = EXCLUDED.nombre_contacto,
			empresa = EXCLUDED.empresa,
			email = EXCLUDED.email,
			telefono = EXCLUDED.telefono,
			pais = EXCLUDED.pais,
			ciudad = EXCLUDED.ciudad,
			direccion = EXCLUDED.direccion,
			nit = EXCLUDED.nit,
			sitio_web = EXCLUDED.sitio_web,
			updated_at = EXCLUDED.updated_at
		RETURNING id::text, (xmax = 0)`,
		o.ID, o.UserID, o.TipoContacto, nullIfEmpty(o.NombreContacto), nullIfEmpty(o.Empresa), o.Email,
		o.Telefono, o.Pais, nullIfEmpty(o.Ciudad), nullIfEmpty(o.Direccion), nullIfEmpty(o.NIT),
		nullIfEmpty(o.SitioWeb), o.UpdatedAt,
	).Scan(&o.ID, &inserted)
	if err != nil {
		return false, fmt.Errorf("upsert owner: %w", err)
	}
	return inserted, nil
}

// GetByUserID obtiene el perfil del usuario. nil, nil si no existe.
func (r *OwnerRepo) GetByUserID(ctx context.Context, userID string) (*entity.Owner, error) {
	var o entity.Owner
	var nombre, empresa, ciudad, direccion, nit, web *string
	err := r.q.QueryRow(ctx, `
		SELECT id::text, user_id::text, tipo_contacto, nombre_contacto, empresa, email, telefono, pais,
			ciudad, direccion, nit, sitio_web, created_at, updated_at
		FROM owners WHERE user_id = $1`, userID).Scan(
		&o.ID, &o.UserID, &o.TipoContacto, &nombre, &empresa, &o.Email, &o.Telefono, &o.Pais,
		&ciudad, &direccion, &nit, &web, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get owner: %w", err)
	}
	o.NombreContacto, o.Empresa, o.Ciudad = deref(nombre), deref(empresa), deref(ciudad)
	o.Direccion, o.NIT, o.SitioWeb = deref(direccion), deref(nit), deref(web)
	return &o, nil
}
