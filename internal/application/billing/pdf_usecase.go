package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/stellarmotion-erp/internal/domain"
	"github.com/jhoicas/stellarmotion-erp/internal/domain/repository"
)

// PDFUseCase genera el estado de cuenta (PDF) de una factura de marca.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	generator   StatementPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(invoiceRepo repository.InvoiceRepository, generator StatementPDFGenerator) *PDFUseCase {
	return &PDFUseCase{invoiceRepo: invoiceRepo, generator: generator}
}

// DownloadStatement carga la factura y sus pagos y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe o es de otra marca.
func (uc *PDFUseCase) DownloadStatement(ctx context.Context, brandID, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil || inv.BrandID != brandID {
		return nil, "", domain.ErrNotFound
	}

	payments, err := uc.invoiceRepo.ListPayments(ctx, inv.ID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener pagos: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateStatement(ctx, inv, payments)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	numero := inv.Numero
	if numero == "" {
		numero = inv.ID
	}
	return pdfBytes, fmt.Sprintf("factura_%s.pdf", numero), nil
}
