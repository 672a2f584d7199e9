package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
)

// InvoiceRepository puerto de facturas de marca y sus pagos.
type InvoiceRepository interface {
	ListByBrand(ctx context.Context, brandID, estado string) ([]*entity.Invoice, error)
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	UpdatePayment(ctx context.Context, id string, paid decimal.Decimal, estado string, at time.Time) error
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)

	CreatePayment(ctx context.Context, p *entity.Payment) error
	ListPayments(ctx context.Context, invoiceID string) ([]*entity.Payment, error)
}
