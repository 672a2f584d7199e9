package dto

import "github.com/jhoicas/stellarmotion-erp/internal/domain/permisos"

// RoleRequest alta/edición de rol. Permisos y PermisosTecnicos son ids del catálogo.
type RoleRequest struct {
	ID               string   `json:"id"`
	Nombre           string   `json:"nombre"`
	Descripcion      string   `json:"descripcion"`
	Permisos         []string `json:"permisos"`
	PermisosTecnicos []string `json:"permisosTecnicos"`
}

// RoleResponse rol con su matriz de permisos.
type RoleResponse struct {
	ID               string                         `json:"id"`
	Nombre           string                         `json:"nombre"`
	Descripcion      string                         `json:"descripcion"`
	Permisos         permisos.Matrix                `json:"permisos"`
	PermisosTecnicos []permisos.TechnicalPermission `json:"permisosTecnicos"`
}

// PermisoResponse entrada del catálogo (módulo normalizado).
type PermisoResponse struct {
	ID     string `json:"id"`
	Modulo string `json:"modulo"`
	Accion string `json:"accion"`
}

// RolesListResponse GET /api/ajustes/roles.
type RolesListResponse struct {
	Roles    []RoleResponse    `json:"roles"`
	Permisos []PermisoResponse `json:"permisos"`
}
