package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stellarmotion-erp/internal/domain"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo facturas de marca y pagos (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id::text, numero, brand_id::text, owner_id::text, owner_name, soporte_id::text, soporte_nombre,
	periodo_inicio, periodo_fin, subtotal, impuesto, total, paid_amount, estado, fecha_vencimiento, created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var ownerID, soporteID *string
	err := row.Scan(&inv.ID, &inv.Numero, &inv.BrandID, &ownerID, &inv.OwnerName, &soporteID, &inv.SoporteNombre,
		&inv.PeriodoInicio, &inv.PeriodoFin, &inv.Subtotal, &inv.Impuesto, &inv.Total, &inv.PaidAmount,
		&inv.Estado, &inv.FechaVencimiento, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	inv.OwnerID = deref(ownerID)
	inv.SoporteID = deref(soporteID)
	return &inv, nil
}

// ListByBrand lista las facturas de la marca ordenadas por vencimiento.
func (r *InvoiceRepo) ListByBrand(ctx context.Context, brandID, estado string) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+invoiceColumns+` FROM brand_invoices
		WHERE brand_id = $1 AND ($2 = '' OR estado = $2)
		ORDER BY fecha_vencimiento ASC, numero ASC`, brandID, estado)
	if err != nil {
		return nil, fmt.Errorf("list facturas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan factura: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

func (r *InvoiceRepo) getOne(ctx context.Context, sql, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get factura: %w", err)
	}
	return inv, nil
}

// GetByID obtiene una factura. nil, nil si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM brand_invoices WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene la factura bloqueando la fila (usar dentro de RunBilling).
func (r *InvoiceRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM brand_invoices WHERE id = $1 FOR UPDATE`, id)
}

// UpdatePayment persiste el nuevo pagado y estado.
func (r *InvoiceRepo) UpdatePayment(ctx context.Context, id string, paid decimal.Decimal, estado string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE brand_invoices SET paid_amount = $2, estado = $3, updated_at = $4
		WHERE id = $1`, id, paid, estado, at)
	if err != nil {
		return fmt.Errorf("update pago factura: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkOverdue pasa a vencida las facturas cobrables con vencimiento anterior a now.
func (r *InvoiceRepo) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE brand_invoices SET estado = 'vencida', updated_at = $1
		WHERE estado IN ('pendiente', 'enviada', 'parcial') AND fecha_vencimiento < $1::date`, now)
	if err != nil {
		return 0, fmt.Errorf("marcar vencidas: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CreatePayment inserta un pago.
func (r *InvoiceRepo) CreatePayment(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO brand_payments (id, invoice_id, monto, metodo, fecha_pago, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.InvoiceID, p.Monto, p.Metodo, p.FechaPago, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert pago: %w", err)
	}
	return nil
}

// ListPayments lista los pagos de la factura, más recientes primero.
func (r *InvoiceRepo) ListPayments(ctx context.Context, invoiceID string) ([]*entity.Payment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id::text, invoice_id::text, monto, metodo, fecha_pago, created_at
		FROM brand_payments WHERE invoice_id = $1
		ORDER BY fecha_pago DESC`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list pagos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Monto, &p.Metodo, &p.FechaPago, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pago: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
