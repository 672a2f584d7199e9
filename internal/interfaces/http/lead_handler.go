package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stellarmotion-erp/internal/application/crm"
	"github.com/jhoicas/stellarmotion-erp/internal/application/dto"
)

// LeadHandler CRM de leads con papelera.
type LeadHandler struct {
	uc *crm.LeadUseCase
}

// NewLeadHandler construye el handler.
func NewLeadHandler(uc *crm.LeadUseCase) *LeadHandler {
	return &LeadHandler{uc: uc}
}

// List godoc
// @Summary      Listar leads
// @Tags         leads
// @Security     Session
// @Produce      json
// @Param        query    query  string  false  "Texto sobre nombre, empresa, email o teléfono"
// @Param        sector   query  string  false  "Sector (ALL = sin filtro)"
// @Param        interes  query  string  false  "Interés (ALL = sin filtro)"
// @Param        origen   query  string  false  "Origen (ALL = sin filtro)"
// @Param        page     query  int     false  "Página"  default(1)
// @Param        limit    query  int     false  "Límite"  default(20)
// @Success      200      {object}  dto.LeadListResponse
// @Router       /api/leads [get]
func (h *LeadHandler) List(c *fiber.Ctx) error {
	return h.list(c, false)
}

// Trash godoc
// @Summary      Listar papelera de leads
// @Tags         leads
// @Security     Session
// @Produce      json
// @Param        query    query  string  false  "Texto sobre nombre, empresa, email o teléfono"
// @Param        page     query  int     false  "Página"  default(1)
// @Param        limit    query  int     false  "Límite"  default(20)
// @Success      200      {object}  dto.LeadListResponse
// @Router       /api/leads/papelera [get]
func (h *LeadHandler) Trash(c *fiber.Ctx) error {
	return h.list(c, true)
}

func (h *LeadHandler) list(c *fiber.Ctx, trash bool) error {
	var q dto.LeadListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), q, trash)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear lead
// @Tags         leads
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LeadRequest  true  "Datos del lead"
// @Success      201   {object}  dto.LeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/leads [post]
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	var in dto.LeadRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener lead por ID
// @Tags         leads
// @Security     Session
// @Produce      json
// @Param        id   path  string  true  "ID del lead"
// @Success      200  {object}  dto.LeadResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [get]
func (h *LeadHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar lead
// @Tags         leads
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID del lead"
// @Param        body  body  dto.LeadRequest  true  "Datos del lead"
// @Success      200   {object}  dto.LeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [put]
func (h *LeadHandler) Update(c *fiber.Ctx) error {
	var in dto.LeadRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Kill godoc
// @Summary      Enviar leads a la papelera
// @Tags         leads
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IDsRequest  true  "ids"
// @Success      200   {object}  dto.CountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/leads/kill [post]
func (h *LeadHandler) Kill(c *fiber.Ctx) error {
	var in dto.IDsRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	n, err := h.uc.Kill(c.UserContext(), in.IDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CountResponse{Count: n})
}

// Restore godoc
// @Summary      Restaurar leads de la papelera
// @Tags         leads
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IDsRequest  true  "ids"
// @Success      200   {object}  dto.CountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/leads/restore [post]
func (h *LeadHandler) Restore(c *fiber.Ctx) error {
	var in dto.IDsRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	n, err := h.uc.Restore(c.UserContext(), in.IDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CountResponse{Count: n})
}
