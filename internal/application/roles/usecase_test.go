package roles_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stellarmotion-erp/internal/application/dto"
	"github.com/jhoicas/stellarmotion-erp/internal/application/roles"
	"github.com/jhoicas/stellarmotion-erp/internal/domain"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/repository"
)

// memRoles repositorio en memoria; failOn fuerza error en la lectura indicada.
type memRoles struct {
	roles   []*entity.Role
	catalog []*entity.Permiso
	links   []*entity.RolPermiso
	failOn  string
}

var errDB = errors.New("db caída")

func (m *memRoles) ListRoles(context.Context) ([]*entity.Role, error) {
	if m.failOn == "roles" {
		return nil, errDB
	}
	return m.roles, nil
}
func (m *memRoles) GetRole(_ context.Context, id string) (*entity.Role, error) {
	for _, r := range m.roles {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}
func (m *memRoles) FindRoleByName(_ context.Context, nombre string) (*entity.Role, error) {
	for _, r := range m.roles {
		if r.Nombre == nombre {
			return r, nil
		}
	}
	return nil, nil
}
func (m *memRoles) CreateRole(_ context.Context, r *entity.Role) error {
	for _, x := range m.roles {
		if x.Nombre == r.Nombre {
			return domain.ErrDuplicate
		}
	}
	m.roles = append(m.roles, r)
	return nil
}
func (m *memRoles) UpdateRole(_ context.Context, r *entity.Role) error {
	for i, x := range m.roles {
		if x.ID == r.ID {
			m.roles[i] = r
		}
	}
	return nil
}
func (m *memRoles) DeleteRole(_ context.Context, id string) (bool, error) {
	for i, r := range m.roles {
		if r.ID == id {
			m.roles = append(m.roles[:i], m.roles[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
func (m *memRoles) ListPermisos(context.Context) ([]*entity.Permiso, error) {
	if m.failOn == "permisos" {
		return nil, errDB
	}
	return m.catalog, nil
}
func (m *memRoles) ListRolPermisos(context.Context) ([]*entity.RolPermiso, error) {
	if m.failOn == "rol_permisos" {
		return nil, errDB
	}
	return m.links, nil
}
func (m *memRoles) ListRolPermisosByRole(_ context.Context, rolID string) ([]*entity.RolPermiso, error) {
	var out []*entity.RolPermiso
	for _, l := range m.links {
		if l.RolID == rolID {
			out = append(out, l)
		}
	}
	return out, nil
}
func (m *memRoles) ReplaceRolPermisos(ctx context.Context, rolID string, ids []string) error {
	_ = m.DeleteRolPermisos(ctx, rolID)
	for _, id := range ids {
		for _, p := range m.catalog {
			if p.ID == id {
				m.links = append(m.links, &entity.RolPermiso{RolID: rolID, PermisoID: id})
			}
		}
	}
	return nil
}
func (m *memRoles) DeleteRolPermisos(_ context.Context, rolID string) error {
	kept := m.links[:0]
	for _, l := range m.links {
		if l.RolID != rolID {
			kept = append(kept, l)
		}
	}
	m.links = kept
	return nil
}

func (m *memRoles) RunRoles(_ context.Context, fn func(roles repository.RoleRepository) error) error {
	return fn(m)
}

func newRepo() *memRoles {
	return &memRoles{
		roles: []*entity.Role{{ID: "r1", Nombre: "Comercial", Descripcion: "Ventas"}},
		catalog: []*entity.Permiso{
			{ID: "p1", Modulo: "Clientes", Accion: "ver"},
			{ID: "p2", Modulo: "clientes", Accion: "editar"},
			{ID: "p3", Modulo: "Técnico", Accion: "ver costes"},
			{ID: "p4", Modulo: "TECNICO", Accion: "exportar"},
		},
		links: []*entity.RolPermiso{
			{RolID: "r1", PermisoID: "p1"},
			{RolID: "r1", PermisoID: "p-huerfano"},
		},
	}
}

func TestList_Matriz(t *testing.T) {
	repo := newRepo()
	uc := roles.NewUseCase(repo, repo)

	out, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Roles, 1)
	assert.Equal(t, map[string]bool{"ver": true, "editar": false}, out.Roles[0].Permisos["clientes"])
	assert.Len(t, out.Roles[0].PermisosTecnicos, 2)
	assert.Len(t, out.Permisos, 4)
	assert.Equal(t, "clientes", out.Permisos[0].Modulo)
}

func TestList_FalloLecturaPrimaria(t *testing.T) {
	for _, src := range []string{"roles", "permisos", "rol_permisos"} {
		repo := newRepo()
		repo.failOn = src
		_, err := roles.NewUseCase(repo, repo).List(context.Background())
		assert.ErrorIs(t, err, errDB, src)
	}
}

func TestCreate_ConPermisosYTecnicos(t *testing.T) {
	repo := newRepo()
	uc := roles.NewUseCase(repo, repo)

	out, err := uc.Create(context.Background(), dto.RoleRequest{
		Nombre: "Técnico campo", Descripcion: "Instalaciones",
		Permisos: []string{"p1", "p2"}, PermisosTecnicos: []string{"p4", "p4"},
	})
	require.NoError(t, err)
	assert.True(t, out.Permisos["clientes"]["editar"])
	for _, tp := range out.PermisosTecnicos {
		assert.Equal(t, tp.ID == "p4", tp.Asignado)
	}

	_, err = uc.Create(context.Background(), dto.RoleRequest{Nombre: "Sin descripcion"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_ReemplazaVinculos(t *testing.T) {
	repo := newRepo()
	uc := roles.NewUseCase(repo, repo)

	out, err := uc.Update(context.Background(), dto.RoleRequest{
		ID: "r1", Nombre: "Comercial", Descripcion: "Ventas", Permisos: []string{"p2"},
	})
	require.NoError(t, err)
	assert.False(t, out.Permisos["clientes"]["ver"])
	assert.True(t, out.Permisos["clientes"]["editar"])

	_, err = uc.Update(context.Background(), dto.RoleRequest{ID: "nope", Nombre: "x", Descripcion: "y"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_BorraVinculos(t *testing.T) {
	repo := newRepo()
	uc := roles.NewUseCase(repo, repo)

	require.NoError(t, uc.Delete(context.Background(), "r1"))
	links, _ := repo.ListRolPermisosByRole(context.Background(), "r1")
	assert.Empty(t, links)
	assert.Empty(t, repo.roles)

	assert.ErrorIs(t, uc.Delete(context.Background(), "r1"), domain.ErrNotFound)
}

func TestPermisoService(t *testing.T) {
	repo := newRepo()
	repo.catalog = append(repo.catalog, &entity.Permiso{ID: "p5", Modulo: "ajustes", Accion: "admin"})
	repo.links = append(repo.links, &entity.RolPermiso{RolID: "r1", PermisoID: "p5"})
	svc := roles.NewPermisoService(repo)
	ctx := context.Background()

	m, err := svc.UserMatrix(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, m)

	ok, err := svc.Allows(ctx, "r1", "Clientes", "ver")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = svc.Allows(ctx, "r1", "ajustes", "ver")
	assert.True(t, ok)
	ok, _ = svc.Allows(ctx, "r1", "ajustes", "editar")
	assert.False(t, ok)
}
