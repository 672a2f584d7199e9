// Package billing contiene las reglas puras de cobro de facturas de marca.
package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stellarmotion-erp/internal/domain"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
)

// CanPay indica si la factura admite pagos en su estado actual.
func CanPay(estado string) bool {
	switch estado {
	case entity.InvoicePendiente, entity.InvoiceVencida, entity.InvoiceParcial:
		return true
	}
	return false
}

// ApplyPayment calcula el nuevo pagado y estado tras abonar amount.
// No modifica inv. Exige 0 < amount <= saldo pendiente.
func ApplyPayment(inv *entity.Invoice, amount decimal.Decimal) (paid decimal.Decimal, estado string, err error) {
	if !CanPay(inv.Estado) {
		return decimal.Zero, "", fmt.Errorf("%w: estado %s", domain.ErrNotPayable, inv.Estado)
	}
	if !amount.IsPositive() {
		return decimal.Zero, "", fmt.Errorf("%w: debe ser mayor que cero", domain.ErrInvalidAmount)
	}
	outstanding := inv.Outstanding()
	if amount.GreaterThan(outstanding) {
		return decimal.Zero, "", fmt.Errorf("%w: excede el saldo pendiente (%s)", domain.ErrInvalidAmount, outstanding.StringFixed(2))
	}
	paid = inv.PaidAmount.Add(amount)
	if paid.Equal(inv.Total) {
		return paid, entity.InvoicePagada, nil
	}
	return paid, entity.InvoiceParcial, nil
}

// Summary KPIs del listado de facturas de una marca.
type Summary struct {
	Outstanding  decimal.Decimal
	Paid         decimal.Decimal
	OverdueCount int
	NextDueDate  *time.Time
}

// Summarize agrega saldo pendiente, total pagado, vencidas y próximo vencimiento
// (el menor entre las facturas cobrables).
// Las facturas canceladas no suman saldo pendiente.
func Summarize(invoices []*entity.Invoice) Summary {
	s := Summary{Outstanding: decimal.Zero, Paid: decimal.Zero}
	for _, inv := range invoices {
		s.Paid = s.Paid.Add(inv.PaidAmount)
		if inv.Estado != entity.InvoiceCancelada && inv.Estado != entity.InvoicePagada {
			s.Outstanding = s.Outstanding.Add(inv.Outstanding())
		}
		if inv.Estado == entity.InvoiceVencida {
			s.OverdueCount++
		}
		if CanPay(inv.Estado) {
			due := inv.FechaVencimiento
			if s.NextDueDate == nil || due.Before(*s.NextDueDate) {
				s.NextDueDate = &due
			}
		}
	}
	return s
}
