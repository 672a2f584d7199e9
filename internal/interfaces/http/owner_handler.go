package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stellarmotion-erp/internal/application/dto"
	"github.com/jhoicas/stellarmotion-erp/internal/application/owners"
)

// OwnerHandler alta de propietarios de soportes.
type OwnerHandler struct {
	uc *owners.UseCase
}

// NewOwnerHandler construye el handler.
func NewOwnerHandler(uc *owners.UseCase) *OwnerHandler {
	return &OwnerHandler{uc: uc}
}

// Complete godoc
// @Summary      Completar perfil de owner
// @Tags         owners
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CompleteOwnerRequest  true  "Perfil del owner"
// @Success      200   {object}  dto.CompleteOwnerResponse
// @Success      201   {object}  dto.CompleteOwnerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/owners/complete [post]
func (h *OwnerHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteOwnerRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Complete(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	if out.Created {
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	return c.JSON(out)
}
