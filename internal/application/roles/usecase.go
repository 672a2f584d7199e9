package roles

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/stellarmotion-erp/internal/application/dto"
	"github.com/jhoicas/stellarmotion-erp/internal/domain"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/permisos"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con el repo de roles atado a la tx.
type TxRunner interface {
	RunRoles(ctx context.Context, fn func(roles repository.RoleRepository) error) error
}

// UseCase administración de roles y su matriz de permisos.
type UseCase struct {
	repo repository.RoleRepository
	tx   TxRunner
}

// NewUseCase construye el caso de uso de roles.
func NewUseCase(repo repository.RoleRepository, tx TxRunner) *UseCase {
	return &UseCase{repo: repo, tx: tx}
}

// List devuelve los roles con su matriz y el catálogo de permisos.
// Un fallo en cualquiera de las tres lecturas se propaga.
func (uc *UseCase) List(ctx context.Context) (*dto.RolesListResponse, error) {
	roleList, err := uc.repo.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("roles: listar roles: %w", err)
	}
	catalog, err := uc.repo.ListPermisos(ctx)
	if err != nil {
		return nil, fmt.Errorf("roles: listar permisos: %w", err)
	}
	links, err := uc.repo.ListRolPermisos(ctx)
	if err != nil {
		return nil, fmt.Errorf("roles: listar rol_permisos: %w", err)
	}

	out := &dto.RolesListResponse{
		Roles:    make([]dto.RoleResponse, 0, len(roleList)),
		Permisos: make([]dto.PermisoResponse, 0, len(catalog)),
	}
	for _, r := range roleList {
		out.Roles = append(out.Roles, toRoleResponse(r, catalog, links))
	}
	for _, p := range catalog {
		out.Permisos = append(out.Permisos, dto.PermisoResponse{
			ID:     p.ID,
			Modulo: permisos.Normalize(p.Modulo),
			Accion: p.Accion,
		})
	}
	sort.SliceStable(out.Permisos, func(i, j int) bool {
		if out.Permisos[i].Modulo != out.Permisos[j].Modulo {
			return out.Permisos[i].Modulo < out.Permisos[j].Modulo
		}
		return out.Permisos[i].Accion < out.Permisos[j].Accion
	})
	return out, nil
}

// Create da de alta el rol y sus vínculos en una sola transacción.
func (uc *UseCase) Create(ctx context.Context, in dto.RoleRequest) (*dto.RoleResponse, error) {
	role, err := roleFromRequest(in)
	if err != nil {
		return nil, err
	}
	role.ID = uuid.New().String()
	ids := permisoIDs(in)
	err = uc.tx.RunRoles(ctx, func(roles repository.RoleRepository) error {
		if err := roles.CreateRole(ctx, role); err != nil {
			return err
		}
		return roles.ReplaceRolPermisos(ctx, role.ID, ids)
	})
	if err != nil {
		return nil, err
	}
	return uc.get(ctx, role)
}

// Update reemplaza nombre, descripción y todos los vínculos del rol en una transacción.
func (uc *UseCase) Update(ctx context.Context, in dto.RoleRequest) (*dto.RoleResponse, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("%w: id es obligatorio", domain.ErrInvalidInput)
	}
	role, err := roleFromRequest(in)
	if err != nil {
		return nil, err
	}
	role.ID = in.ID
	ids := permisoIDs(in)
	err = uc.tx.RunRoles(ctx, func(roles repository.RoleRepository) error {
		existing, err := roles.GetRole(ctx, role.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		if err := roles.UpdateRole(ctx, role); err != nil {
			return err
		}
		return roles.ReplaceRolPermisos(ctx, role.ID, ids)
	})
	if err != nil {
		return nil, err
	}
	return uc.get(ctx, role)
}

// Delete borra los vínculos del rol y el rol en una transacción.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id es obligatorio", domain.ErrInvalidInput)
	}
	return uc.tx.RunRoles(ctx, func(roles repository.RoleRepository) error {
		if err := roles.DeleteRolPermisos(ctx, id); err != nil {
			return err
		}
		ok, err := roles.DeleteRole(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (uc *UseCase) get(ctx context.Context, role *entity.Role) (*dto.RoleResponse, error) {
	catalog, err := uc.repo.ListPermisos(ctx)
	if err != nil {
		return nil, err
	}
	links, err := uc.repo.ListRolPermisosByRole(ctx, role.ID)
	if err != nil {
		return nil, err
	}
	resp := toRoleResponse(role, catalog, links)
	return &resp, nil
}

func roleFromRequest(in dto.RoleRequest) (*entity.Role, error) {
	nombre := strings.TrimSpace(in.Nombre)
	descripcion := strings.TrimSpace(in.Descripcion)
	if nombre == "" || descripcion == "" {
		return nil, fmt.Errorf("%w: nombre y descripcion son obligatorios", domain.ErrInvalidInput)
	}
	return &entity.Role{Nombre: nombre, Descripcion: descripcion}, nil
}

// permisoIDs une permisos y permisosTecnicos sin repetidos.
func permisoIDs(in dto.RoleRequest) []string {
	seen := make(map[string]bool, len(in.Permisos)+len(in.PermisosTecnicos))
	ids := make([]string, 0, len(in.Permisos)+len(in.PermisosTecnicos))
	for _, list := range [][]string{in.Permisos, in.PermisosTecnicos} {
		for _, id := range list {
			id = strings.TrimSpace(id)
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

func toRoleResponse(r *entity.Role, catalog []*entity.Permiso, links []*entity.RolPermiso) dto.RoleResponse {
	m := permisos.BuildRoleMatrix(catalog, links, r.ID)
	return dto.RoleResponse{
		ID:               r.ID,
		Nombre:           r.Nombre,
		Descripcion:      r.Descripcion,
		Permisos:         m.Permisos,
		PermisosTecnicos: m.PermisosTecnicos,
	}
}
