// Package pdf genera la versión PDF del reporte de stock por sucursal.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Por producto: nombre, precio, stock de bodega               │
//	│    TABLA: Sucursal | Stock                                   │
//	│    Total unidades | Valorizado                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: valorizado total                                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/stock-distribution/internal/application/dto"
	"github.com/jhoicas/stock-distribution/internal/application/report"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ report.StockReportPDFGenerator = (*MarotoStockReportGenerator)(nil)

// MarotoStockReportGenerator implementa report.StockReportPDFGenerator usando Maroto v2.
type MarotoStockReportGenerator struct {
	title string
}

// NewMarotoStockReportGenerator construye el generador; title va en el encabezado y metadatos.
func NewMarotoStockReportGenerator(title string) *MarotoStockReportGenerator {
	return &MarotoStockReportGenerator{title: title}
}

// GenerateStockReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoStockReportGenerator) GenerateStockReportPDF(_ context.Context, rep *dto.StockReportResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, p := range rep.Products {
		m.AddRows(productRows(p)...)
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	}

	m.AddRows(row.New(10).Add(
		col.New(8).Add(text.New("VALORIZADO TOTAL", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(4).Add(text.New("$"+formatMoney(rep.TotalValue.StringFixed(2)), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2,
		})),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoStockReportGenerator) headerRow(rep *dto.StockReportResponse) core.Row {
	return row.New(16).Add(
		col.New(8).Add(text.New(g.title, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		})),
		col.New(4).Add(text.New("Generado: "+rep.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
			Size: 8, Align: align.Right, Top: 3, Color: colorGray,
		})),
	)
}

// productRows: encabezado del producto, una fila por sucursal y totales.
func productRows(p dto.ProductStockDTO) []core.Row {
	rows := []core.Row{
		row.New(8).Add(
			col.New(6).Add(text.New(p.ProductName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 2})),
			col.New(3).Add(text.New("P. unit: $"+formatMoney(p.UnitPrice.StringFixed(2)), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			})),
			col.New(3).Add(text.New("Bodega: "+strconv.FormatInt(p.WarehouseStock, 10), props.Text{
				Size: 8, Align: align.Right, Top: 3,
			})),
		),
	}
	if len(p.Branches) == 0 {
		rows = append(rows, row.New(6).Add(col.New(12).Add(text.New("Sin stock asignado a sucursales", props.Text{
			Size: 8, Left: 4, Top: 1, Color: colorGray,
		}))))
	}
	for _, b := range p.Branches {
		rows = append(rows, row.New(6).Add(
			col.New(8).Add(text.New(b.BranchName, props.Text{Size: 8, Left: 4, Top: 1})),
			col.New(4).Add(text.New(strconv.FormatInt(b.StockLevel, 10), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	rows = append(rows, row.New(7).Add(
		col.New(8).Add(text.New(fmt.Sprintf("Total unidades: %d", p.TotalUnits), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 2,
		})),
		col.New(4).Add(text.New("$"+formatMoney(p.TotalValue.StringFixed(2)), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1,
		})),
	))
	return rows
}

// formatMoney inserta puntos de miles en la parte entera y usa coma decimal.
// Ej: "120000.00" → "120.000,00"
func formatMoney(s string) string {
	intPart, frac := s, ""
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			intPart, frac = s[:i], s[i+1:]
			break
		}
	}
	sign := ""
	if len(intPart) > 0 && intPart[0] == '-' {
		sign, intPart = "-", intPart[1:]
	}
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+len(frac)+2)
	buf = append(buf, sign...)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if frac != "" {
		buf = append(buf, ',')
		buf = append(buf, frac...)
	}
	return string(buf)
}
