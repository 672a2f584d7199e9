package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stellarmotion-erp/internal/domain"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

// LeadRepo implementación de LeadRepository.
type LeadRepo struct {
	q Querier
}

// NewLeadRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLeadRepository(q Querier) *LeadRepo {
	return &LeadRepo{q: q}
}

const leadColumns = `id::text, nombre, empresa, email, telefono, ciudad, sector, interes, origen, deleted_at, created_at, updated_at`

func scanLead(row pgx.Row) (*entity.Lead, error) {
	var l entity.Lead
	var empresa, email, telefono, ciudad, sector, interes, origen *string
	if err := row.Scan(&l.ID, &l.Nombre, &empresa, &email, &telefono, &ciudad, &sector, &interes, &origen,
		&l.DeletedAt, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.Empresa, l.Email, l.Telefono = deref(empresa), deref(email), deref(telefono)
	l.Ciudad, l.Sector, l.Interes, l.Origen = deref(ciudad), deref(sector), deref(interes), deref(origen)
	return &l, nil
}

// Create inserta un lead.
func (r *LeadRepo) Create(ctx context.Context, l *entity.Lead) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO leads (id, nombre, empresa, email, telefono, ciudad, sector, interes, origen, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		l.ID, l.Nombre, nullIfEmpty(l.Empresa), nullIfEmpty(l.Email), nullIfEmpty(l.Telefono),
		nullIfEmpty(l.Ciudad), nullIfEmpty(l.Sector), nullIfEmpty(l.Interes), nullIfEmpty(l.Origen),
		l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// GetByID obtiene un lead (activo o en papelera). nil, nil si no existe.
func (r *LeadRepo) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	l, err := scanLead(r.q.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return l, nil
}

// Update actualiza los datos de contacto de un lead.
func (r *LeadRepo) Update(ctx context.Context, l *entity.Lead) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE leads SET nombre = $2, empresa = $3, email = $4, telefono = $5, ciudad = $6,
			sector = $7, interes = $8, origen = $9, updated_at = $10
		WHERE id = $1`,
		l.ID, l.Nombre, nullIfEmpty(l.Empresa), nullIfEmpty(l.Email), nullIfEmpty(l.Telefono),
		nullIfEmpty(l.Ciudad), nullIfEmpty(l.Sector), nullIfEmpty(l.Interes), nullIfEmpty(l.Origen), l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// buildLeadWhere arma el WHERE dinámico y sus argumentos.
func buildLeadWhere(f repository.LeadFilter) (string, []any) {
	conds := []string{"deleted_at IS NULL"}
	if f.Trash {
		conds[0] = "deleted_at IS NOT NULL"
	}
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		add("(nombre ILIKE $%[1]d OR empresa ILIKE $%[1]d OR email ILIKE $%[1]d OR telefono ILIKE $%[1]d)", containsPattern(q))
	}
	if f.Sector != "" {
		add("sector = $%d", f.Sector)
	}
	if f.Interes != "" {
		add("interes = $%d", f.Interes)
	}
	if f.Origen != "" {
		add("origen = $%d", f.Origen)
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List devuelve la página pedida y el total que cumple el filtro.
func (r *LeadRepo) List(ctx context.Context, f repository.LeadFilter) ([]*entity.Lead, int, error) {
	where, args := buildLeadWhere(f)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM leads`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	order := " ORDER BY created_at DESC"
	if f.Trash {
		order = " ORDER BY deleted_at DESC"
	}
	pageArgs := append(append([]any{}, args...), f.Limit, f.Offset)
	sql := fmt.Sprintf(`SELECT %s FROM leads%s%s LIMIT $%d OFFSET $%d`,
		leadColumns, where, order, len(args)+1, len(args)+2)

	rows, err := r.q.Query(ctx, sql, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan lead: %w", err)
		}
		list = append(list, l)
	}
	return list, total, rows.Err()
}

// SoftDelete manda a la papelera los leads activos indicados.
func (r *LeadRepo) SoftDelete(ctx context.Context, ids []string) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE leads SET deleted_at = NOW(), updated_at = NOW()
		WHERE id::text = ANY($1::text[]) AND deleted_at IS NULL`, ids)
	if err != nil {
		return 0, fmt.Errorf("soft delete leads: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Restore saca de la papelera los leads indicados.
func (r *LeadRepo) Restore(ctx context.Context, ids []string) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE leads SET deleted_at = NULL, updated_at = NOW()
		WHERE id::text = ANY($1::text[]) AND deleted_at IS NOT NULL`, ids)
	if err != nil {
		return 0, fmt.Errorf("restore leads: %w", err)
	}
	return tag.RowsAffected(), nil
}
