package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stellarmotion-erp/internal/domain"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/repository"
)

var _ repository.InvitationRepository = (*InvitationRepo)(nil)

// InvitationRepo implementación de InvitationRepository (usable con pool o tx).
type InvitationRepo struct {
	q Querier
}

// NewInvitationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvitationRepository(q Querier) *InvitationRepo {
	return &InvitationRepo{q: q}
}

const invitationColumns = `id::text, email, rol, token, estado, cambio_password, enlace, fecha_creacion, fecha_expiracion, fecha_uso`

func scanInvitation(row pgx.Row) (*entity.Invitation, error) {
	var inv entity.Invitation
	err := row.Scan(&inv.ID, &inv.Email, &inv.Rol, &inv.Token, &inv.Estado, &inv.CambioPassword,
		&inv.Enlace, &inv.FechaCreacion, &inv.FechaExpiracion, &inv.FechaUso)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// LockEmail toma un advisory lock de transacción sobre el email.
// Fuera de una transacción el lock se libera al terminar la sentencia.
func (r *InvitationRepo) LockEmail(ctx context.Context, email string) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, email); err != nil {
		return fmt.Errorf("advisory lock invitación: %w", err)
	}
	return nil
}

// FindPendingByEmail devuelve la invitación pendiente del email, o nil.
func (r *InvitationRepo) FindPendingByEmail(ctx context.Context, email string) (*entity.Invitation, error) {
	inv, err := scanInvitation(r.q.QueryRow(ctx,
		`SELECT `+invitationColumns+` FROM invitaciones WHERE email = $1 AND estado = 'pendiente' LIMIT 1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find invitación pendiente: %w", err)
	}
	return inv, nil
}

// Create inserta la invitación. Otra pendiente para el email -> domain.ErrPendingInvite.
func (r *InvitationRepo) Create(ctx context.Context, inv *entity.Invitation) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO invitaciones (id, email, rol, token, estado, cambio_password, enlace, fecha_creacion, fecha_expiracion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		inv.ID, inv.Email, inv.Rol, inv.Token, inv.Estado, inv.CambioPassword, inv.Enlace,
		inv.FechaCreacion, inv.FechaExpiracion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPendingInvite
		}
		return fmt.Errorf("insert invitación: %w", err)
	}
	return nil
}

// GetByID obtiene una invitación. nil, nil si no existe.
func (r *InvitationRepo) GetByID(ctx context.Context, id string) (*entity.Invitation, error) {
	inv, err := scanInvitation(r.q.QueryRow(ctx, `SELECT `+invitationColumns+` FROM invitaciones WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invitación: %w", err)
	}
	return inv, nil
}

// GetByTokenForUpdate bloquea la invitación del token (SELECT ... FOR UPDATE).
func (r *InvitationRepo) GetByTokenForUpdate(ctx context.Context, token string) (*entity.Invitation, error) {
	inv, err := scanInvitation(r.q.QueryRow(ctx,
		`SELECT `+invitationColumns+` FROM invitaciones WHERE token = $1 FOR UPDATE`, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invitación por token: %w", err)
	}
	return inv, nil
}

// List devuelve las invitaciones más recientes, opcionalmente filtradas por estado.
func (r *InvitationRepo) List(ctx context.Context, estado string, limit int) ([]*entity.Invitation, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+invitationColumns+` FROM invitaciones
		WHERE ($1 = '' OR estado = $1)
		ORDER BY fecha_creacion DESC
		LIMIT $2`, estado, limit)
	if err != nil {
		return nil, fmt.Errorf("list invitaciones: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invitación: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado; devuelve false si la invitación no existe.
func (r *InvitationRepo) UpdateStatus(ctx context.Context, id, estado string, fechaUso *time.Time) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE invitaciones SET estado = $2, fecha_uso = COALESCE($3, fecha_uso)
		WHERE id = $1`, id, estado, fechaUso)
	if err != nil {
		if isInvalidText(err) {
			return false, nil
		}
		if isUniqueViolation(err) {
			return false, domain.ErrPendingInvite
		}
		return false, fmt.Errorf("update invitación: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete elimina la invitación; devuelve false si no existía.
func (r *InvitationRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM invitaciones WHERE id = $1`, id)
	if err != nil {
		if isInvalidText(err) {
			return false, nil
		}
		return false, fmt.Errorf("delete invitación: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ExpirePending marca como expiradas las pendientes vencidas.
func (r *InvitationRepo) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE invitaciones SET estado = 'expirado'
		WHERE estado = 'pendiente' AND fecha_expiracion <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("expirar invitaciones: %w", err)
	}
	return tag.RowsAffected(), nil
}
