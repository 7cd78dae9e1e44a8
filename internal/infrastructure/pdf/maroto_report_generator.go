// Package pdf genera el reporte de ventas en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte   │  Período + fecha de emisión │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Total ventas | Unidades | Clientes atendidos       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Producto | Categoría | Cantidad | Ingresos       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

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

	"github.com/jhoicas/tienda-inventario-api/internal/application/analytics"
	"github.com/jhoicas/tienda-inventario-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLight   = &props.Color{Red: 235, Green: 241, Blue: 247}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ analytics.SalesPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa analytics.SalesPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	storeName string
	now       func() time.Time
}

// NewMarotoReportGenerator construye el generador; storeName va en el encabezado.
func NewMarotoReportGenerator(storeName string) *MarotoReportGenerator {
	return &MarotoReportGenerator{storeName: storeName, now: time.Now}
}

// GenerateSalesReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateSalesReportPDF(
	ctx context.Context,
	sales dto.SalesReportResponse,
	top []dto.BestSellerResponse,
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de ventas", true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(sales))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(sales))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("PRODUCTOS MÁS VENDIDOS DEL PERÍODO", props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	)))
	m.AddRows(tableHeaderRow())
	if len(top) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin ventas en el período.", props.Text{Size: 8, Color: colorGray, Top: 2, Align: align.Center}),
		)))
	}
	for _, r := range tableRows(top) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Valores calculados a partir de las salidas de inventario registradas en el período.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la tienda + título (izq) y período + emisión (der).
func (g *MarotoReportGenerator) headerRow(sales dto.SalesReportResponse) core.Row {
	periodo := sales.FechaInicio.Format("02/01/2006") + " – " + sales.FechaFin.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de ventas por período", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERÍODO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(periodo, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6,
			}),
			text.New("Emitido: "+g.now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// summaryRow: los tres totales del período.
func summaryRow(sales dto.SalesReportResponse) core.Row {
	box := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: colorPrimary, Top: 8}),
		)
	}
	return row.New(18).Add(
		box("Total ventas", "$"+formatMoney(sales.TotalVentas)),
		box("Unidades vendidas", strconv.FormatInt(sales.ProductosVendidos, 10)),
		box("Clientes atendidos", strconv.FormatInt(sales.ClientesAtendidos, 10)),
	)
}

// tableHeaderRow: cabecera de la tabla del ranking.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Producto", 4, align.Left),
		h("Categoría", 3, align.Left),
		h("Cantidad", 2, align.Right),
		h("Ingresos", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorLight})
}

// tableRows: una fila por producto del ranking.
func tableRows(top []dto.BestSellerResponse) []core.Row {
	result := make([]core.Row, 0, len(top))
	for i, b := range top {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(b.Nombre, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(b.Categoria, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New(strconv.FormatInt(b.CantidadVendida, 10), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+formatMoney(b.IngresosGenerados), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney formatea con puntos de miles y coma decimal.
// Ej: 25000 → "25.000,00", 1234567.5 → "1.234.567,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "," + frac
}
