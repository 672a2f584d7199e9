package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stellarmotion-erp/internal/application/dto"
	"github.com/jhoicas/stellarmotion-erp/internal/application/messaging"
)

// ConversationHandler hilos de mensajería entre contactos.
type ConversationHandler struct {
	uc *messaging.UseCase
}

// NewConversationHandler construye el handler.
func NewConversationHandler(uc *messaging.UseCase) *ConversationHandler {
	return &ConversationHandler{uc: uc}
}

// List godoc
// @Summary      Conversaciones del usuario
// @Tags         conversations
// @Security     Session
// @Produce      json
// @Success      200  {array}   dto.ConversationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/conversations [get]
func (h *ConversationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetContactoID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Buscar o crear conversación
// @Tags         conversations
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateConversationRequest  true  "other_contacto_id, soporte_id, solicitud_id"
// @Success      200   {object}  dto.CreateConversationResponse
// @Success      201   {object}  dto.CreateConversationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/conversations [post]
func (h *ConversationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateConversationRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.FindOrCreate(c.UserContext(), GetContactoID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	status := fiber.StatusOK
	if out.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(out)
}
