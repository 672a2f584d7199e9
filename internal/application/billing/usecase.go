package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stellarmotion-erp/internal/application/dto"
	"github.com/jhoicas/stellarmotion-erp/internal/domain"
	dombilling "github.com/jhoicas/stellarmotion-erp/internal/domain/billing"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/repository"
)

// defaultMethod método de pago cuando el cliente no lo indica.
const defaultMethod = "transferencia"

// InvoiceUseCase consulta y cobro de facturas de una marca.
type InvoiceUseCase struct {
	repo repository.InvoiceRepository
	tx   TxRunner
	now  func() time.Time
}

// NewInvoiceUseCase construye el caso de uso de facturas de marca.
func NewInvoiceUseCase(repo repository.InvoiceRepository, tx TxRunner) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, tx: tx, now: time.Now}
}

// List devuelve las facturas de la marca por vencimiento y los KPIs agregados.
// Un estado fuera del catálogo es ErrInvalidInput.
func (uc *InvoiceUseCase) List(ctx context.Context, brandID, estado string) (*dto.InvoiceListResponse, error) {
	if estado != "" && !entity.ValidInvoiceEstado(estado) {
		return nil, fmt.Errorf("%w: estado %q no válido", domain.ErrInvalidInput, estado)
	}
	invoices, err := uc.repo.ListByBrand(ctx, brandID, estado)
	if err != nil {
		return nil, err
	}
	s := dombilling.Summarize(invoices)
	out := &dto.InvoiceListResponse{
		Invoices: make([]dto.InvoiceResponse, 0, len(invoices)),
		KPIs: dto.InvoiceKPIs{
			Outstanding:  s.Outstanding,
			Paid:         s.Paid,
			OverdueCount: s.OverdueCount,
			NextDueDate:  s.NextDueDate,
		},
	}
	for _, inv := range invoices {
		out.Invoices = append(out.Invoices, ToInvoiceResponse(inv))
	}
	return out, nil
}

// Detail devuelve la factura con sus pagos. Factura de otra marca → ErrNotFound.
func (uc *InvoiceUseCase) Detail(ctx context.Context, brandID, invoiceID string) (*dto.InvoiceDetailResponse, error) {
	inv, err := uc.owned(ctx, uc.repo, brandID, invoiceID, false)
	if err != nil {
		return nil, err
	}
	payments, err := uc.repo.ListPayments(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	return toDetail(inv, payments), nil
}

// Payments lista los pagos de la factura, más recientes primero.
func (uc *InvoiceUseCase) Payments(ctx context.Context, brandID, invoiceID string) ([]dto.PaymentResponse, error) {
	inv, err := uc.owned(ctx, uc.repo, brandID, invoiceID, false)
	if err != nil {
		return nil, err
	}
	payments, err := uc.repo.ListPayments(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	return toPayments(payments), nil
}

// Pay registra un abono en una sola transacción: bloquea la factura, valida el monto,
// inserta el pago y actualiza pagado/estado. Devuelve la factura actualizada con sus pagos.
func (uc *InvoiceUseCase) Pay(ctx context.Context, brandID, invoiceID string, in dto.PayRequest) (*dto.InvoiceDetailResponse, error) {
	method := strings.TrimSpace(in.Method)
	if method == "" {
		method = defaultMethod
	}
	var out *dto.InvoiceDetailResponse
	err := uc.tx.RunBilling(ctx, func(invoices repository.InvoiceRepository) error {
		inv, err := uc.owned(ctx, invoices, brandID, invoiceID, true)
		if err != nil {
			return err
		}
		paid, estado, err := dombilling.ApplyPayment(inv, in.Amount)
		if err != nil {
			return err
		}
		now := uc.now()
		payment := &entity.Payment{
			ID:        uuid.New().String(),
			InvoiceID: inv.ID,
			Monto:     in.Amount,
			Metodo:    method,
			FechaPago: now,
			CreatedAt: now,
		}
		if err := invoices.CreatePayment(ctx, payment); err != nil {
			return err
		}
		if err := invoices.UpdatePayment(ctx, inv.ID, paid, estado, now); err != nil {
			return err
		}
		inv.PaidAmount = paid
		inv.Estado = estado
		inv.UpdatedAt = now

		payments, err := invoices.ListPayments(ctx, inv.ID)
		if err != nil {
			return err
		}
		out = toDetail(inv, payments)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarkOverdue pasa a vencida las facturas cobrables con vencimiento pasado.
func (uc *InvoiceUseCase) MarkOverdue(ctx context.Context) (int64, error) {
	return uc.repo.MarkOverdue(ctx, uc.now())
}

// owned carga la factura y comprueba que pertenece a la marca.
func (uc *InvoiceUseCase) owned(ctx context.Context, repo repository.InvoiceRepository, brandID, invoiceID string, lock bool) (*entity.Invoice, error) {
	if invoiceID == "" {
		return nil, fmt.Errorf("%w: id de factura vacío", domain.ErrInvalidInput)
	}
	get := repo.GetByID
	if lock {
		get = repo.GetByIDForUpdate
	}
	inv, err := get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.BrandID != brandID {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// ToInvoiceResponse convierte la entidad a DTO con saldo y can_pay.
func ToInvoiceResponse(inv *entity.Invoice) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		ID:               inv.ID,
		Numero:           inv.Numero,
		OwnerID:          inv.OwnerID,
		OwnerName:        inv.OwnerName,
		SoporteID:        inv.SoporteID,
		SoporteNombre:    inv.SoporteNombre,
		PeriodoInicio:    inv.PeriodoInicio,
		PeriodoFin:       inv.PeriodoFin,
		Subtotal:         inv.Subtotal,
		Impuesto:         inv.Impuesto,
		Total:            inv.Total,
		PaidAmount:       inv.PaidAmount,
		Outstanding:      inv.Outstanding(),
		Estado:           inv.Estado,
		FechaVencimiento: inv.FechaVencimiento,
		CanPay:           dombilling.CanPay(inv.Estado),
	}
}

func toDetail(inv *entity.Invoice, payments []*entity.Payment) *dto.InvoiceDetailResponse {
	return &dto.InvoiceDetailResponse{
		Invoice:  ToInvoiceResponse(inv),
		Payments: toPayments(payments),
	}
}

func toPayments(payments []*entity.Payment) []dto.PaymentResponse {
	out := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, dto.PaymentResponse{
			ID:        p.ID,
			InvoiceID: p.InvoiceID,
			Monto:     p.Monto,
			Metodo:    p.Metodo,
			FechaPago: p.FechaPago,
		})
	}
	return out
}
