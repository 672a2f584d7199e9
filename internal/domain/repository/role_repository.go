package repository

import (
	"context"

	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
)

// RoleRepository puerto de roles, catálogo de permisos y tabla puente rol_permisos.
type RoleRepository interface {
	ListRoles(ctx context.Context) ([]*entity.Role, error)
	GetRole(ctx context.Context, id string) (*entity.Role, error)
	FindRoleByName(ctx context.Context, nombre string) (*entity.Role, error)
	CreateRole(ctx context.Context, role *entity.Role) error
	UpdateRole(ctx context.Context, role *entity.Role) error
	DeleteRole(ctx context.Context, id string) (bool, error)

	ListPermisos(ctx context.Context) ([]*entity.Permiso, error)
	ListRolPermisos(ctx context.Context) ([]*entity.RolPermiso, error)
	ListRolPermisosByRole(ctx context.Context, rolID string) ([]*entity.RolPermiso, error)
	// ReplaceRolPermisos borra los vínculos del rol e inserta permisoIDs.
	// Debe ejecutarse dentro de una transacción.
	ReplaceRolPermisos(ctx context.Context, rolID string, permisoIDs []string) error
	DeleteRolPermisos(ctx context.Context, rolID string) error
}
