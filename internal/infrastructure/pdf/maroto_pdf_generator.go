// Package pdf implementa la representación imprimible de una remisión.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: REMISIÓN + folio   │  Estado + Fecha                │
//	│  CLIENTE / ORDEN                                             │
//	│  TABLA VENTAS: # | Fecha | Subtotal | Impuesto | Total       │
//	│  TABLA CRÉDITOS: Fecha | Motivo | Monto                      │
//	│  TOTALES: Vendido / Créditos / SALDO                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/jhoicas/Remisiones-api/internal/application/remission"
	"github.com/jhoicas/Remisiones-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

const dateLayout = "02/01/2006 15:04"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa remission.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	issuer string
}

var _ remission.PDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador. issuer aparece como autor del PDF.
func NewMarotoPDFGenerator(issuer string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{issuer: issuer}
}

// GenerateRemissionPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateRemissionPDF(_ context.Context, doc *remission.Document) ([]byte, error) {
	if doc == nil || doc.Remission == nil {
		return nil, fmt.Errorf("pdf: documento vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Remisión "+doc.Remission.Folio, true).
		WithAuthor(g.issuer, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(doc.Remission))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("VENTAS"))
	m.AddRows(salesHeaderRow())
	m.AddRows(salesRows(doc.Sales)...)

	if len(doc.Credits) > 0 {
		m.AddRows(row.New(3))
		m.AddRows(sectionTitle("CRÉDITOS"))
		m.AddRows(creditsHeaderRow())
		m.AddRows(creditRows(doc.Credits)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc))
	m.AddRows(footerRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc *remission.Document) core.Row {
	rem := doc.Remission
	status := "ABIERTA"
	if rem.Status.IsFinal() {
		status = "CERRADA"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("REMISIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(rem.Folio, props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 6,
			}),
		),
		col.New(5).Add(
			text.New("Estado: "+status, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Emitida: "+rem.CreatedAt.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New("Generada: "+doc.GeneratedAt.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

func customerRow(rem *entity.Remission) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(rem.CustomerName, "—"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		),
		col.New(4).Add(
			text.New("ORDEN", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(rem.OrderFolio, rem.OrderID), props.Text{Size: 9, Align: align.Right, Top: 6}),
		),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

func salesHeaderRow() core.Row {
	return row.New(7).Add(
		headerCell("#", 1, align.Center),
		headerCell("Fecha", 4, align.Left),
		headerCell("Subtotal", 2, align.Right),
		headerCell("Impuesto", 2, align.Right),
		headerCell("Total", 3, align.Right),
	)
}

func salesRows(sales []*entity.Sale) []core.Row {
	if len(sales) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(text.New("Sin ventas registradas", props.Text{
			Size: 8, Color: colorGray, Top: 1, Align: align.Center,
		})))}
	}
	rows := make([]core.Row, 0, len(sales))
	for i, s := range sales {
		rows = append(rows, row.New(6).Add(
			cell(fmt.Sprint(i+1), 1, align.Center),
			cell(s.CreatedAt.Format(dateLayout), 4, align.Left),
			cell(formatMoney(s.Subtotal), 2, align.Right),
			cell(formatMoney(s.Tax), 2, align.Right),
			cell(formatMoney(s.Total()), 3, align.Right),
		))
	}
	return rows
}

func creditsHeaderRow() core.Row {
	return row.New(7).Add(
		headerCell("Fecha", 4, align.Left),
		headerCell("Motivo", 5, align.Left),
		headerCell("Monto", 3, align.Right),
	)
}

func creditRows(credits []*entity.CreditAssignment) []core.Row {
	rows := make([]core.Row, 0, len(credits))
	for _, c := range credits {
		rows = append(rows, row.New(6).Add(
			cell(c.CreatedAt.Format(dateLayout), 4, align.Left),
			cell(c.Reason, 5, align.Left),
			cell("-"+formatMoney(c.Amount), 3, align.Right),
		))
	}
	return rows
}

func totalsRow(doc *remission.Document) core.Row {
	label := func(s string, c *props.Color) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Color: c})
	}
	value := func(s string, c *props.Color) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Color: c})
	}
	balanceColor := colorPrimary
	if doc.Summary.Balance.IsNegative() {
		balanceColor = colorAlert
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Total vendido:", nil),
			label(fmt.Sprintf("Créditos (%d):", len(doc.Credits)), nil),
			label("SALDO:", balanceColor),
		),
		col.New(3).Add(
			value(formatMoney(doc.Summary.TotalSales), nil),
			value("-"+formatMoney(doc.Summary.TotalCredits), nil),
			value(formatMoney(doc.Summary.Balance), balanceColor),
		),
	)
}

func footerRow(doc *remission.Document) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%d venta(s). Montos en moneda nacional con dos decimales.", doc.Summary.SalesCount),
			props.Text{Size: 7, Color: colorGray, Top: 4}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea un monto con separador de miles y dos decimales.
// Ej: 1234567.5 → "$1,234,567.50", -3 → "-$3.00"
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(c)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
