package billing

import (
	"context"

	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con el repo de facturas atado a la tx.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(invoices repository.InvoiceRepository) error) error
}

// StatementPDFGenerator puerto de salida para el estado de cuenta en PDF de una factura.
type StatementPDFGenerator interface {
	GenerateStatement(ctx context.Context, inv *entity.Invoice, payments []*entity.Payment) ([]byte, error)
}
