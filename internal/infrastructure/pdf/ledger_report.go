// Package pdf genera el reporte imprimible del libro de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + filtros       │  Fecha de generación       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: unidades entrada / salida / valor total            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Producto | Tipo | Cant | Prev→Nuevo | Valor  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: filas mostradas / total                             │
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/retail-pos/internal/application/inventory"
	"github.com/jhoicas/retail-pos/internal/domain/entity"
	domaininv "github.com/jhoicas/retail-pos/internal/domain/inventory"
)

var _ inventory.LedgerReportGenerator = (*LedgerReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var kindLabels = map[entity.TransitionKind]string{
	entity.KindSale:           "Venta",
	entity.KindPurchase:       "Compra",
	entity.KindCustomerReturn: "Dev. cliente",
	entity.KindSupplierReturn: "Dev. proveedor",
	entity.KindAdjustment:     "Ajuste",
}

// LedgerReportGenerator implementa inventory.LedgerReportGenerator usando Maroto v2.
type LedgerReportGenerator struct {
	printer *message.Printer
}

// NewLedgerReportGenerator construye el generador; los montos se formatean según tag (ej. language.Spanish).
func NewLedgerReportGenerator(tag language.Tag) *LedgerReportGenerator {
	return &LedgerReportGenerator{printer: message.NewPrinter(tag)}
}

// GenerateLedgerReport genera el PDF y devuelve sus bytes.
func (g *LedgerReportGenerator) GenerateLedgerReport(_ context.Context, report inventory.LedgerReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Libro de inventario", true).
		WithAuthor(report.GeneratedBy, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(report.Transitions))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.tableRows(report.Transitions)...)

	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(g.footerRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *LedgerReportGenerator) headerRow(report inventory.LedgerReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("LIBRO DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(describeFilter(report), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04")+" UTC", props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Por: "+nonEmpty(report.GeneratedBy, "-"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func (g *LedgerReportGenerator) summaryRow(list []*entity.StockTransition) core.Row {
	var in, out int
	total := decimal.Zero
	for _, t := range list {
		delta := t.NewStock - t.PreviousStock
		if delta >= 0 {
			in += delta
		} else {
			out -= delta
		}
		total = total.Add(t.TotalValue)
	}
	cell := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(value, props.Text{Size: 10, Top: 6}),
		)
	}
	return row.New(14).Add(
		cell("Unidades que entraron", g.printer.Sprintf("%d", in)),
		cell("Unidades que salieron", g.printer.Sprintf("%d", out)),
		cell("Valor movido", g.money(total)),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Tipo", 2, align.Left),
		h("Cant.", 1, align.Right),
		h("Stock", 2, align.Center),
		h("Valor", 2, align.Right),
	)
}

func (g *LedgerReportGenerator) tableRows(list []*entity.StockTransition) []core.Row {
	rows := make([]core.Row, 0, len(list))
	for _, t := range list {
		qtyColor := colorGray
		if domaininv.SignedDelta(t.TransactionType, t.Quantity) < 0 {
			qtyColor = colorRed
		}
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(t.CreatedAt.Format("02/01/06 15:04"), props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(3).Add(text.New(truncate(t.ProductName, 34), props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(2).Add(text.New(kindLabel(t.TransactionType), props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(1).Add(text.New(g.printer.Sprintf("%d", t.Quantity), props.Text{
				Size: 7, Top: 1, Align: align.Right, Right: 1, Color: qtyColor,
			})),
			col.New(2).Add(text.New(g.printer.Sprintf("%d → %d", t.PreviousStock, t.NewStock), props.Text{
				Size: 7, Top: 1, Align: align.Center,
			})),
			col.New(2).Add(text.New(g.money(t.TotalValue), props.Text{Size: 7, Top: 1, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

func (g *LedgerReportGenerator) footerRow(report inventory.LedgerReport) core.Row {
	msg := g.printer.Sprintf("%d movimientos", len(report.Transitions))
	if report.Truncated {
		msg = g.printer.Sprintf("Mostrando %d de %d movimientos (límite del reporte)", len(report.Transitions), report.Total)
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 7, Color: colorGray, Top: 2, Align: align.Right}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (g *LedgerReportGenerator) money(d decimal.Decimal) string {
	return "$" + g.printer.Sprintf("%.2f", d.InexactFloat64())
}

func kindLabel(k entity.TransitionKind) string {
	if l, ok := kindLabels[k]; ok {
		return l
	}
	return string(k)
}

func describeFilter(report inventory.LedgerReport) string {
	f := report.Filter
	var parts []string
	if f.ProductID != "" {
		parts = append(parts, "producto "+f.ProductID)
	}
	if f.TransactionType != "" {
		parts = append(parts, "tipo "+kindLabel(f.TransactionType))
	}
	if f.From != nil {
		parts = append(parts, "desde "+f.From.Format("02/01/2006"))
	}
	if f.To != nil {
		parts = append(parts, "hasta "+f.To.Format("02/01/2006"))
	}
	if len(parts) == 0 {
		return "Todos los movimientos"
	}
	return "Filtro: " + strings.Join(parts, ", ")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
