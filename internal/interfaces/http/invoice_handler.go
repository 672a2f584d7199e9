package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stellarmotion-erp/internal/application/billing"
	"github.com/jhoicas/stellarmotion-erp/internal/application/dto"
)

// InvoiceHandler facturas de la marca autenticada (la marca es el usuario de la sesión).
type InvoiceHandler struct {
	uc  *billing.InvoiceUseCase
	pdf *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdf *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf}
}

// List godoc
// @Summary      Listar facturas de la marca
// @Tags         brand-invoices
// @Security     Session
// @Produce      json
// @Param        estado  query  string  false  "Filtrar por estado"
// @Success      200     {object}  dto.InvoiceListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      401     {object}  dto.ErrorResponse
// @Router       /api/brand/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUserID(c), c.Query("estado"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de factura con pagos
// @Tags         brand-invoices
// @Security     Session
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/brand/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Detail(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Payments godoc
// @Summary      Pagos de una factura
// @Tags         brand-invoices
// @Security     Session
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {array}   dto.PaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/brand/invoices/{id}/payments [get]
func (h *InvoiceHandler) Payments(c *fiber.Ctx) error {
	out, err := h.uc.Payments(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Pay godoc
// @Summary      Registrar pago
// @Description  Bloquea la factura, inserta el pago y actualiza paid_amount y estado en una transacción.
// @Tags         brand-invoices
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        id    path  string          true  "ID de la factura"
// @Param        body  body  dto.PayRequest  true  "amount, method"
// @Success      200   {object}  dto.InvoiceDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/brand/invoices/{id}/payments [post]
// @Router       /api/brand/invoices/{id}/pay [post]
func (h *InvoiceHandler) Pay(c *fiber.Ctx) error {
	var in dto.PayRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Pay(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Estado de cuenta de la factura en PDF
// @Tags         brand-invoices
// @Security     Session
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/brand/invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.pdf.DownloadStatement(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
