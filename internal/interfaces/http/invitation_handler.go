package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stellarmotion-erp/internal/application/dto"
	"github.com/jhoicas/stellarmotion-erp/internal/application/invitation"
)

// InvitationHandler invitaciones de alta y de cambio de contraseña.
type InvitationHandler struct {
	uc *invitation.UseCase
}

// NewInvitationHandler construye el handler.
func NewInvitationHandler(uc *invitation.UseCase) *InvitationHandler {
	return &InvitationHandler{uc: uc}
}

// List godoc
// @Summary      Listar invitaciones
// @Tags         ajustes
// @Security     Session
// @Produce      json
// @Param        estado  query  string  false  "pendiente, usado, expirado o revocado"
// @Success      200     {array}   dto.InvitationResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/ajustes/invitaciones [get]
func (h *InvitationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("estado"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear invitación
// @Description  Genera el token, guarda la invitación y encola el correo con el enlace.
// @Tags         ajustes
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvitationRequest  true  "email, rol, horasValidez, cambioPassword"
// @Success      201   {object}  dto.CreateInvitationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ajustes/invitaciones [post]
func (h *InvitationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvitationRequest
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
// @Summary      Cambiar estado de una invitación
// @Tags         ajustes
// @Security     Session
// @Accept       json
// @Param        body  body  dto.UpdateInvitationRequest  true  "id, estado"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ajustes/invitaciones [put]
func (h *InvitationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInvitationRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	if err := h.uc.UpdateStatus(c.UserContext(), in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar invitación
// @Tags         ajustes
// @Security     Session
// @Accept       json
// @Param        id    query  string                       false  "ID de la invitación"
// @Param        body  body   dto.DeleteInvitationRequest  false  "id"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ajustes/invitaciones [delete]
func (h *InvitationHandler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" && len(c.Body()) > 0 {
		var in dto.DeleteInvitationRequest
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
		id = in.ID
	}
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
