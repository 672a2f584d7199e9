package permisos_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/permisos"
)

func TestNormalize_ColapsaVariantes(t *testing.T) {
	for _, in := range []string{"Técnico", " tecnico ", "TECNICO", "técnico", "TÉCNICO"} {
		assert.Equal(t, "tecnico", permisos.Normalize(in), "entrada %q", in)
	}
	assert.Equal(t, "facturacion", permisos.Normalize("Facturación"))
	assert.Equal(t, "", permisos.Normalize("   "))
}

func catalog() []*entity.Permiso {
	return []*entity.Permiso{
		{ID: "p1", Modulo: "Clientes", Accion: "ver"},
		{ID: "p2", Modulo: "clientes", Accion: "editar"},
		{ID: "p3", Modulo: "Técnico", Accion: "ver costes"},
		{ID: "p4", Modulo: " tecnico ", Accion: "exportar"},
		{ID: "p5", Modulo: "TECNICO", Accion: "aprobar"},
		{ID: "p6", Modulo: "ajustes", Accion: "admin"},
		{ID: "p7", Modulo: "ajustes", Accion: "editar"},
		{ID: "p8", Modulo: "soportes", Accion: "admin"},
	}
}

func TestBuildRoleMatrix_AgrupaYSeparaTecnicos(t *testing.T) {
	links := []*entity.RolPermiso{
		{RolID: "r1", PermisoID: "p1"},
		{RolID: "r1", PermisoID: "p4"},
		{RolID: "r2", PermisoID: "p2"},
		{RolID: "r1", PermisoID: "desconocido"},
	}

	m := permisos.BuildRoleMatrix(catalog(), links, "r1")

	assert.Equal(t, map[string]bool{"ver": true, "editar": false}, m.Permisos["clientes"])
	assert.NotContains(t, m.Permisos, "tecnico", "el módulo técnico va en la lista plana")
	require.Len(t, m.PermisosTecnicos, 3, "las tres variantes de técnico se agrupan")
	for _, tp := range m.PermisosTecnicos {
		assert.Equal(t, tp.ID == "p4", tp.Asignado, "acción %s", tp.Accion)
	}
}

func TestBuildUserMatrix_SinRolEsVacia(t *testing.T) {
	m := permisos.BuildUserMatrix(catalog(), nil, "")
	assert.Empty(t, m)
}

func TestBuildUserMatrix_AdminExpande(t *testing.T) {
	links := []*entity.RolPermiso{
		{RolID: "r1", PermisoID: "p6"},
		{RolID: "r1", PermisoID: "p8"},
	}
	m := permisos.BuildUserMatrix(catalog(), links, "r1")

	assert.Equal(t, map[string]bool{"ver": true, "editar": true, "eliminar": true, "admin": true}, m["soportes"])
	assert.True(t, m["ajustes"]["ver"], "admin en ajustes otorga ver")
	assert.False(t, m["ajustes"]["editar"], "admin en ajustes no otorga editar")
	assert.False(t, m["ajustes"]["eliminar"])
	assert.Equal(t, map[string]bool{"ver": false, "editar": false, "eliminar": false, "admin": false}, m["clientes"])
	assert.NotContains(t, m["tecnico"], "ver", "el módulo técnico no recibe acciones estándar")
}

func TestMatrix_Allows(t *testing.T) {
	links := []*entity.RolPermiso{
		{RolID: "r1", PermisoID: "p1"},
		{RolID: "r1", PermisoID: "p6"},
		{RolID: "r1", PermisoID: "p8"},
		{RolID: "r1", PermisoID: "p5"},
	}
	m := permisos.BuildUserMatrix(catalog(), links, "r1")

	assert.True(t, m.Allows("Clientes", "ver"))
	assert.False(t, m.Allows("clientes", "editar"))
	assert.True(t, m.Allows("soportes", "eliminar"))
	assert.True(t, m.Allows("ajustes", "admin"))
	assert.True(t, m.Allows("ajustes", "ver"))
	assert.False(t, m.Allows("ajustes", "eliminar"))
	assert.True(t, m.Allows("Técnico", "aprobar"))
	assert.False(t, m.Allows("tecnico", "exportar"))
	assert.False(t, m.Allows("inexistente", "ver"))
}
