package roles

import (
	"context"

	"github.com/jhoicas/stellarmotion-erp/internal/domain/permisos"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/repository"
)

// PermisoService resuelve la matriz efectiva de un usuario a partir de su rol.
// Es el único punto de la aplicación que decide si una acción está permitida.
type PermisoService struct {
	repo repository.RoleRepository
}

// NewPermisoService construye el servicio de permisos.
func NewPermisoService(repo repository.RoleRepository) *PermisoService {
	return &PermisoService{repo: repo}
}

// UserMatrix devuelve la matriz del rol. Sin rol → matriz vacía.
func (s *PermisoService) UserMatrix(ctx context.Context, rolID string) (permisos.Matrix, error) {
	if rolID == "" {
		return permisos.Matrix{}, nil
	}
	catalog, err := s.repo.ListPermisos(ctx)
	if err != nil {
		return nil, err
	}
	links, err := s.repo.ListRolPermisosByRole(ctx, rolID)
	if err != nil {
		return nil, err
	}
	return permisos.BuildUserMatrix(catalog, links, rolID), nil
}

// Allows informa si el rol tiene la acción sobre el módulo.
// Devuelve error solo ante fallos de infraestructura.
func (s *PermisoService) Allows(ctx context.Context, rolID, modulo, accion string) (bool, error) {
	m, err := s.UserMatrix(ctx, rolID)
	if err != nil {
		return false, err
	}
	return m.Allows(modulo, accion), nil
}
