package permisos

import (
	"sort"

	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
)

// Matrix permisos por módulo normalizado y acción.
type Matrix map[string]map[string]bool

// TechnicalPermission acción del módulo técnico con su estado de asignación.
type TechnicalPermission struct {
	ID       string `json:"id"`
	Accion   string `json:"accion"`
	Asignado bool   `json:"asignado"`
}

// RoleMatrix matriz de un rol: módulos normales y lista plana de permisos técnicos.
type RoleMatrix struct {
	Permisos         Matrix
	PermisosTecnicos []TechnicalPermission
}

// assignedSet indexa los permiso_id asignados a un rol.
// Las filas cuyo permiso no existe en el catálogo se ignoran.
func assignedSet(catalog []*entity.Permiso, links []*entity.RolPermiso, rolID string) map[string]bool {
	known := make(map[string]bool, len(catalog))
	for _, p := range catalog {
		known[p.ID] = true
	}
	set := make(map[string]bool)
	for _, rp := range links {
		if rp.RolID == rolID && known[rp.PermisoID] {
			set[rp.PermisoID] = true
		}
	}
	return set
}

// BuildRoleMatrix construye la matriz de un rol a partir del catálogo completo
// y de las filas de rol_permisos. Cada acción del catálogo aparece con su estado.
func BuildRoleMatrix(catalog []*entity.Permiso, links []*entity.RolPermiso, rolID string) RoleMatrix {
	assigned := assignedSet(catalog, links, rolID)
	out := RoleMatrix{
		Permisos:         Matrix{},
		PermisosTecnicos: []TechnicalPermission{},
	}
	for _, p := range catalog {
		mod := Normalize(p.Modulo)
		if mod == entity.ModuloTecnico {
			out.PermisosTecnicos = append(out.PermisosTecnicos, TechnicalPermission{
				ID:       p.ID,
				Accion:   p.Accion,
				Asignado: assigned[p.ID],
			})
			continue
		}
		if out.Permisos[mod] == nil {
			out.Permisos[mod] = map[string]bool{}
		}
		out.Permisos[mod][p.Accion] = out.Permisos[mod][p.Accion] || assigned[p.ID]
	}
	sort.Slice(out.PermisosTecnicos, func(i, j int) bool {
		return out.PermisosTecnicos[i].Accion < out.PermisosTecnicos[j].Accion
	})
	return out
}

// BuildUserMatrix construye la matriz efectiva de un usuario con rol rolID.
// Los módulos normales arrancan con ver/editar/eliminar/admin en false; admin
// fuerza ver/editar/eliminar salvo en ajustes, donde solo fuerza ver.
// Un usuario sin rol obtiene una matriz vacía.
func BuildUserMatrix(catalog []*entity.Permiso, links []*entity.RolPermiso, rolID string) Matrix {
	m := Matrix{}
	if rolID == "" {
		return m
	}
	assigned := assignedSet(catalog, links, rolID)
	for _, p := range catalog {
		mod := Normalize(p.Modulo)
		if m[mod] == nil {
			m[mod] = map[string]bool{}
			if mod != entity.ModuloTecnico {
				for _, a := range entity.StandardActions {
					m[mod][a] = false
				}
			}
		}
		m[mod][p.Accion] = m[mod][p.Accion] || assigned[p.ID]
	}
	for mod, acciones := range m {
		if mod == entity.ModuloTecnico || !acciones[entity.AccionAdmin] {
			continue
		}
		acciones[entity.AccionVer] = true
		if mod != entity.ModuloAjustes {
			acciones[entity.AccionEditar] = true
			acciones[entity.AccionEliminar] = true
		}
	}
	return m
}

// Allows indica si la matriz concede accion sobre modulo.
// En módulos no técnicos admin implica ver, editar y eliminar; en ajustes solo ver.
func (m Matrix) Allows(modulo, accion string) bool {
	mod := Normalize(modulo)
	acciones, ok := m[mod]
	if !ok {
		return false
	}
	if acciones[accion] {
		return true
	}
	if mod == entity.ModuloTecnico || !acciones[entity.AccionAdmin] {
		return false
	}
	switch accion {
	case entity.AccionVer:
		return true
	case entity.AccionEditar, entity.AccionEliminar:
		return mod != entity.ModuloAjustes
	}
	return false
}
