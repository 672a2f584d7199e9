// Package pdf genera el estado de cuenta en PDF de una factura de marca.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: StellarMotion        │  N° Factura + Estado         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SOPORTE / PROPIETARIO / PERIODO / VENCIMIENTO               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuesto / Total / Pagado / Saldo       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PAGOS: Fecha | Método | Monto                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con la referencia de pago                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stellarmotion-erp/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 32, Green: 38, Blue: 94}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAccent  = &props.Color{Red: 214, Green: 92, Blue: 40}
)

const dateLayout = "02/01/2006"

// ── Generator ─────────────────────────────────────────────────────────────────

// StatementGenerator implementa billing.StatementPDFGenerator usando Maroto v2.
type StatementGenerator struct {
	company string
}

// NewStatementGenerator construye el generador; company aparece en la cabecera.
func NewStatementGenerator(company string) *StatementGenerator {
	if company == "" {
		company = "StellarMotion"
	}
	return &StatementGenerator{company: company}
}

// GenerateStatement genera el PDF de la factura con su historial de pagos.
func (g *StatementGenerator) GenerateStatement(_ context.Context, inv *entity.Invoice, payments []*entity.Payment) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de cuenta "+inv.Numero, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.company, inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(detailRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(paymentsHeaderRow())
	m.AddRows(paymentRows(payments)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(inv))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(company string, inv *entity.Invoice) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Estado de cuenta de factura", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("FACTURA", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(inv.Numero, inv.ID), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Estado: "+strings.ToUpper(inv.Estado), props.Text{Size: 8, Align: align.Right, Top: 14, Color: estadoColor(inv.Estado)}),
		),
	)
}

func detailRow(inv *entity.Invoice) core.Row {
	return row.New(20).Add(
		col.New(6).Add(
			text.New("SOPORTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(inv.SoporteNombre, "—"), props.Text{Size: 9, Top: 6}),
			text.New("Propietario: "+nonEmpty(inv.OwnerName, "—"), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("PERIODO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Align: align.Right}),
			text.New(inv.PeriodoInicio.Format(dateLayout)+" – "+inv.PeriodoFin.Format(dateLayout),
				props.Text{Size: 9, Top: 6, Align: align.Right}),
			text.New("Vence: "+inv.FechaVencimiento.Format(dateLayout),
				props.Text{Size: 8, Top: 12, Color: colorGray, Align: align.Right}),
		),
	)
}

func totalsRow(inv *entity.Invoice) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(d decimal.Decimal) core.Component {
		return text.New(formatMoney(d), props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(30).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:"),
			label("Impuesto:"),
			label("Total:"),
			label("Pagado:"),
			text.New("SALDO:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2}),
		),
		col.New(3).Add(
			value(inv.Subtotal),
			value(inv.Impuesto),
			value(inv.Total),
			value(inv.PaidAmount),
			text.New(formatMoney(inv.Outstanding()), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1}),
		),
	)
}

func paymentsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2}))
	}
	return row.New(8).Add(
		h("Fecha", 4, align.Left),
		h("Método", 4, align.Left),
		h("Monto", 4, align.Right),
	)
}

func paymentRows(payments []*entity.Payment) []core.Row {
	if len(payments) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Sin pagos registrados", props.Text{Size: 8, Color: colorGray, Top: 1}),
		))}
	}
	rows := make([]core.Row, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, row.New(7).Add(
			col.New(4).Add(text.New(p.FechaPago.Format(dateLayout), props.Text{Size: 8, Top: 1})),
			col.New(4).Add(text.New(nonEmpty(p.Metodo, "—"), props.Text{Size: 8, Top: 1})),
			col.New(4).Add(text.New(formatMoney(p.Monto), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func footerRow(inv *entity.Invoice) core.Row {
	ref := paymentReference(inv)
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(ref, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("Referencia de pago", props.Text{Style: fontstyle.Bold, Size: 9, Top: 4, Left: 3, Color: colorPrimary}),
			text.New(ref, props.Text{Size: 8, Top: 10, Left: 3, Color: colorGray}),
			text.New("Documento informativo. No sustituye a la factura fiscal.", props.Text{Size: 7, Top: 24, Left: 3, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func paymentReference(inv *entity.Invoice) string {
	return fmt.Sprintf("SM|%s|%s", nonEmpty(inv.Numero, inv.ID), inv.Outstanding().StringFixed(2))
}

func estadoColor(estado string) *props.Color {
	switch estado {
	case entity.InvoiceVencida, entity.InvoiceCancelada:
		return colorAccent
	}
	return colorGray
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con separador de miles "." y decimales ",".
// Ej: 1234567.5 → "$1.234.567,50"
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "$" + string(buf) + "," + frac
}
