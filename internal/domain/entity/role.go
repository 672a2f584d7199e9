package entity

// Módulo y acciones estándar de la matriz de permisos.
const (
	ModuloTecnico = "tecnico"
	ModuloAjustes = "ajustes"

	AccionVer      = "ver"
	AccionEditar   = "editar"
	AccionEliminar = "eliminar"
	AccionAdmin    = "admin"
)

// StandardActions acciones que todo módulo no técnico expone en la matriz.
var StandardActions = []string{AccionVer, AccionEditar, AccionEliminar, AccionAdmin}

// Role rol de usuario (tabla roles).
type Role struct {
	ID          string
	Nombre      string
	Descripcion string
}

// Permiso par módulo/acción del catálogo (tabla permisos).
type Permiso struct {
	ID     string
	Modulo string
	Accion string
}

// RolPermiso fila de la tabla puente rol_permisos.
type RolPermiso struct {
	RolID     string
	PermisoID string
}
