package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stellarmotion-erp/internal/application/dto"
	"github.com/jhoicas/stellarmotion-erp/internal/application/roles"
)

// RoleHandler administración de roles y matriz de permisos.
type RoleHandler struct {
	uc       *roles.UseCase
	permisos *roles.PermisoService
}

// NewRoleHandler construye el handler.
func NewRoleHandler(uc *roles.UseCase, permisos *roles.PermisoService) *RoleHandler {
	return &RoleHandler{uc: uc, permisos: permisos}
}

// List godoc
// @Summary      Listar roles con su matriz de permisos
// @Tags         ajustes
// @Security     Session
// @Produce      json
// @Success      200  {object}  dto.RolesListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/ajustes/roles [get]
func (h *RoleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear rol
// @Tags         ajustes
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RoleRequest  true  "nombre, descripcion, permisos, permisosTecnicos"
// @Success      201   {object}  dto.RoleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ajustes/roles [post]
func (h *RoleHandler) Create(c *fiber.Ctx) error {
	var in dto.RoleRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar rol y reemplazar sus permisos
// @Tags         ajustes
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RoleRequest  true  "id, nombre, descripcion, permisos, permisosTecnicos"
// @Success      200   {object}  dto.RoleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ajustes/roles [put]
func (h *RoleHandler) Update(c *fiber.Ctx) error {
	var in dto.RoleRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar rol
// @Tags         ajustes
// @Security     Session
// @Param        id  query  string  true  "ID del rol"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ajustes/roles [delete]
func (h *RoleHandler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Permisos godoc
// @Summary      Matriz efectiva de permisos del usuario
// @Tags         ajustes
// @Security     Session
// @Produce      json
// @Success      200  {object}  permisos.Matrix
// @Router       /api/permisos [get]
func (h *RoleHandler) Permisos(c *fiber.Ctx) error {
	m, err := h.permisos.UserMatrix(c.UserContext(), GetRolID(c))
	if err != nil {
		return err
	}
	return c.JSON(m)
}
