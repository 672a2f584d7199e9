package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura de marca.
const (
	InvoicePendiente = "pendiente"
	InvoiceEnviada   = "enviada"
	InvoicePagada    = "pagada"
	InvoiceVencida   = "vencida"
	InvoiceParcial   = "parcial"
	InvoiceCancelada = "cancelada"
)

// ValidInvoiceEstado indica si estado es uno de los estados de factura.
func ValidInvoiceEstado(estado string) bool {
	switch estado {
	case InvoicePendiente, InvoiceEnviada, InvoicePagada, InvoiceVencida, InvoiceParcial, InvoiceCancelada:
		return true
	}
	return false
}

// Invoice factura emitida a una marca por el alquiler de un soporte.
// Nunca se borra físicamente: la anulación es el estado cancelada.
type Invoice struct {
	ID               string
	Numero           string
	BrandID          string // usuario de la marca que paga
	OwnerID          string
	OwnerName        string
	SoporteID        string
	SoporteNombre    string
	PeriodoInicio    time.Time
	PeriodoFin       time.Time
	Subtotal         decimal.Decimal
	Impuesto         decimal.Decimal
	Total            decimal.Decimal
	PaidAmount       decimal.Decimal
	Estado           string
	FechaVencimiento time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Outstanding saldo pendiente (total - pagado).
func (i *Invoice) Outstanding() decimal.Decimal {
	return i.Total.Sub(i.PaidAmount)
}

// Payment pago registrado contra una factura. Inmutable.
type Payment struct {
	ID        string
	InvoiceID string
	Monto     decimal.Decimal
	Metodo    string
	FechaPago time.Time
	CreatedAt time.Time
}
