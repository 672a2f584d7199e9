package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stellarmotion-erp/internal/domain"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo roles, catálogo de permisos y rol_permisos.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// ListRoles lista los roles por nombre.
func (r *RoleRepo) ListRoles(ctx context.Context) ([]*entity.Role, error) {
	rows, err := r.q.Query(ctx, `SELECT id::text, nombre, descripcion FROM roles ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Nombre, &role.Descripcion); err != nil {
			return nil, fmt.Errorf("scan rol: %w", err)
		}
		list = append(list, &role)
	}
	return list, rows.Err()
}

func (r *RoleRepo) getOne(ctx context.Context, where string, arg string) (*entity.Role, error) {
	var role entity.Role
	err := r.q.QueryRow(ctx, `SELECT id::text, nombre, descripcion FROM roles WHERE `+where, arg).
		Scan(&role.ID, &role.Nombre, &role.Descripcion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rol: %w", err)
	}
	return &role, nil
}

// GetRole obtiene un rol por ID. nil, nil si no existe.
func (r *RoleRepo) GetRole(ctx context.Context, id string) (*entity.Role, error) {
	return r.getOne(ctx, "id = $1", id)
}

// FindRoleByName obtiene un rol por nombre (sin distinguir mayúsculas).
func (r *RoleRepo) FindRoleByName(ctx context.Context, nombre string) (*entity.Role, error) {
	return r.getOne(ctx, "lower(nombre) = lower($1)", nombre)
}

// CreateRole inserta un rol. Nombre repetido -> domain.ErrDuplicate.
func (r *RoleRepo) CreateRole(ctx context.Context, role *entity.Role) error {
	_, err := r.q.Exec(ctx, `INSERT INTO roles (id, nombre, descripcion) VALUES ($1, $2, $3)`,
		role.ID, role.Nombre, role.Descripcion)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert rol: %w", err)
	}
	return nil
}

// UpdateRole actualiza nombre y descripción.
func (r *RoleRepo) UpdateRole(ctx context.Context, role *entity.Role) error {
	tag, err := r.q.Exec(ctx, `UPDATE roles SET nombre = $2, descripcion = $3 WHERE id = $1`,
		role.ID, role.Nombre, role.Descripcion)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isInvalidText(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update rol: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteRole elimina el rol; devuelve false si no existía.
func (r *RoleRepo) DeleteRole(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		if isInvalidText(err) {
			return false, nil
		}
		return false, fmt.Errorf("delete rol: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListPermisos devuelve el catálogo completo ordenado por módulo y acción.
func (r *RoleRepo) ListPermisos(ctx context.Context) ([]*entity.Permiso, error) {
	rows, err := r.q.Query(ctx, `SELECT id::text, modulo, accion FROM permisos ORDER BY modulo, accion`)
	if err != nil {
		return nil, fmt.Errorf("list permisos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Permiso
	for rows.Next() {
		var p entity.Permiso
		if err := rows.Scan(&p.ID, &p.Modulo, &p.Accion); err != nil {
			return nil, fmt.Errorf("scan permiso: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *RoleRepo) listLinks(ctx context.Context, sql string, args ...any) ([]*entity.RolPermiso, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list rol_permisos: %w", err)
	}
	defer rows.Close()
	var list []*entity.RolPermiso
	for rows.Next() {
		var rp entity.RolPermiso
		if err := rows.Scan(&rp.RolID, &rp.PermisoID); err != nil {
			return nil, fmt.Errorf("scan rol_permiso: %w", err)
		}
		list = append(list, &rp)
	}
	return list, rows.Err()
}

// ListRolPermisos devuelve todos los vínculos rol-permiso.
func (r *RoleRepo) ListRolPermisos(ctx context.Context) ([]*entity.RolPermiso, error) {
	return r.listLinks(ctx, `SELECT rol_id::text, permiso_id::text FROM rol_permisos`)
}

// ListRolPermisosByRole devuelve los vínculos de un rol.
func (r *RoleRepo) ListRolPermisosByRole(ctx context.Context, rolID string) ([]*entity.RolPermiso, error) {
	return r.listLinks(ctx, `SELECT rol_id::text, permiso_id::text FROM rol_permisos WHERE rol_id = $1`, rolID)
}

// ReplaceRolPermisos borra y reinserta los vínculos del rol. Llamar dentro de RunRoles.
func (r *RoleRepo) ReplaceRolPermisos(ctx context.Context, rolID string, permisoIDs []string) error {
	if err := r.DeleteRolPermisos(ctx, rolID); err != nil {
		return err
	}
	if len(permisoIDs) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO rol_permisos (rol_id, permiso_id)
		SELECT $1, p.id FROM permisos p WHERE p.id::text = ANY($2::text[])
		ON CONFLICT DO NOTHING`, rolID, permisoIDs)
	if err != nil {
		return fmt.Errorf("insert rol_permisos: %w", err)
	}
	return nil
}

// DeleteRolPermisos elimina todos los vínculos del rol. Un id que no es UUID no tiene vínculos.
func (r *RoleRepo) DeleteRolPermisos(ctx context.Context, rolID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM rol_permisos WHERE rol_id = $1`, rolID); err != nil {
		if isInvalidText(err) {
			return nil
		}
		return fmt.Errorf("delete rol_permisos: %w", err)
	}
	return nil
}
