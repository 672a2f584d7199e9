package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceResponse factura de marca.
type InvoiceResponse struct {
	ID               string          `json:"id"`
	Numero           string          `json:"numero"`
	OwnerID          string          `json:"owner_id,omitempty"`
	OwnerName        string          `json:"owner_name"`
	SoporteID        string          `json:"soporte_id,omitempty"`
	SoporteNombre    string          `json:"soporte_nombre"`
	PeriodoInicio    time.Time       `json:"periodo_inicio"`
	PeriodoFin       time.Time       `json:"periodo_fin"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Impuesto         decimal.Decimal `json:"impuesto"`
	Total            decimal.Decimal `json:"total"`
	PaidAmount       decimal.Decimal `json:"paid_amount"`
	Outstanding      decimal.Decimal `json:"outstanding"`
	Estado           string          `json:"estado"`
	FechaVencimiento time.Time       `json:"fecha_vencimiento"`
	CanPay           bool            `json:"can_pay"`
}

// PaymentResponse pago registrado.
type PaymentResponse struct {
	ID        string          `json:"id"`
	InvoiceID string          `json:"invoice_id"`
	Monto     decimal.Decimal `json:"monto"`
	Metodo    string          `json:"metodo"`
	FechaPago time.Time       `json:"fecha_pago"`
}

// InvoiceKPIs agregados del listado de la marca.
type InvoiceKPIs struct {
	Outstanding  decimal.Decimal `json:"outstanding"`
	Paid         decimal.Decimal `json:"paid"`
	OverdueCount int             `json:"overdue_count"`
	NextDueDate  *time.Time      `json:"next_due_date"`
}

// InvoiceListResponse GET /api/brand/invoices.
type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	KPIs     InvoiceKPIs       `json:"kpis"`
}

// InvoiceDetailResponse factura con su historial de pagos.
type InvoiceDetailResponse struct {
	Invoice  InvoiceResponse   `json:"invoice"`
	Payments []PaymentResponse `json:"payments"`
}

// PayRequest abono a una factura. Method opcional.
type PayRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method" validate:"max=50"`
}
