// Package pdf implementa el reporte imprimible de ventas con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: FeriaValle  │  Período del reporte                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Producto | Cant | P.Unit | Total | Ganancia │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total vendido / Ganancia / Unidades / Ventas      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/feriavalle/feriavalle/internal/application/dto"
	"github.com/feriavalle/feriavalle/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 16, Green: 122, Blue: 87}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// printer formatea montos con separadores de miles en español.
var printer = message.NewPrinter(language.Spanish)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa usecase.SalesReportGenerator con Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateSalesReport genera el PDF del período y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateSalesReport(
	_ context.Context,
	title string,
	sales []entity.Sale,
	summary dto.SalesSummary,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor("FeriaValle", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableSaleRows(sales) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(summary)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: marca a la izquierda, período a la derecha.
func headerRow(title string) core.Row {
	return row.New(14).Add(
		col.New(6).Add(
			text.New("FeriaValle", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Registro local de ventas", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 4,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de ventas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Cant.", 1, align.Center),
		h("P. Unit.", 2, align.Right),
		h("Total", 2, align.Right),
		h("Ganancia", 2, align.Right),
	)
}

// tableSaleRows: una fila por venta del período.
func tableSaleRows(sales []entity.Sale) []core.Row {
	result := make([]core.Row, 0, len(sales))
	for _, s := range sales {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				s.Date.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				s.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", s.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(s.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(s.TotalPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(s.Profit),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRows: bloque de totales del período.
func totalsRows(summary dto.SalesSummary) []core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return []core.Row{
		row.New(7).Add(
			col.New(8).Add(label("Ventas registradas:")),
			col.New(4).Add(value(fmt.Sprintf("%d (%d unidades)", summary.SalesCount, summary.TotalUnits))),
		),
		row.New(7).Add(
			col.New(8).Add(label("Total vendido:")),
			col.New(4).Add(value(formatMoney(summary.TotalSales))),
		),
		row.New(8).Add(
			col.New(8).Add(text.New("Ganancia del período:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2,
			})),
			col.New(4).Add(text.New(formatMoney(summary.TotalProfit), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1,
			})),
		),
	}
}

// formatMoney monto con separador de miles en español ($ 1.000).
func formatMoney(d decimal.Decimal) string {
	f, _ := d.Float64()
	return printer.Sprintf("$ %.0f", f)
}
