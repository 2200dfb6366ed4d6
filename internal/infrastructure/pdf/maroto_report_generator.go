// Package pdf renderiza los informes del back office con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa  │  Título del informe + período            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: totales del período                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: filas del informe                                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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
	coreentity "github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/huggingsoft/backoffice-api/internal/application/dto"
	"github.com/huggingsoft/backoffice-api/internal/application/usecase"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ usecase.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa usecase.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// SalesReportPDF genera el informe de ventas y devuelve sus bytes.
func (g *MarotoReportGenerator) SalesReportPDF(report *dto.SalesReportResponse, companyName string) ([]byte, error) {
	m := maroto.New(reportConfig("Informe de Ventas", companyName))

	period := fmt.Sprintf("Período: %s — %s",
		report.DateFrom.Format("02/01/2006"), report.DateTo.Format("02/01/2006"))
	m.AddRows(headerRow(companyName, "INFORME DE VENTAS", period))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(row.New(12).Add(
		col.New(6).Add(
			text.New("Total de ventas completadas", props.Text{Size: 8, Color: colorGray, Top: 1}),
			text.New("$"+formatMoney(report.TotalSales.StringFixed(2)), props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 5,
			}),
		),
		col.New(6).Add(
			text.New("Cantidad de transacciones", props.Text{Size: 8, Color: colorGray, Top: 1, Align: align.Right}),
			text.New(strconv.Itoa(report.Count), props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 5, Align: align.Right,
			}),
		),
	))

	if len(report.ByClient) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(tableHeaderRow(
			cell{"Cliente", 6, align.Left},
			cell{"NIT", 2, align.Left},
			cell{"Ventas", 1, align.Center},
			cell{"Total", 3, align.Right},
		))
		for _, r := range report.ByClient {
			m.AddRows(row.New(7).Add(
				col.New(6).Add(text.New(r.Client.Name, props.Text{Size: 8, Top: 1, Left: 1})),
				col.New(2).Add(text.New(nonEmpty(r.Client.NIT, "—"), props.Text{Size: 8, Top: 1})),
				col.New(1).Add(text.New(strconv.Itoa(r.Count), props.Text{Size: 8, Top: 1, Align: align.Center})),
				col.New(3).Add(text.New("$"+formatMoney(r.Total.StringFixed(2)), props.Text{Size: 8, Top: 1, Align: align.Right, Right: 1})),
			))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar informe de ventas: %w", err)
	}
	return doc.GetBytes(), nil
}

// InventoryReportPDF genera el informe de inventario y devuelve sus bytes.
func (g *MarotoReportGenerator) InventoryReportPDF(products []dto.ProductResponse, companyName string) ([]byte, error) {
	m := maroto.New(reportConfig("Informe de Inventario", companyName))

	m.AddRows(headerRow(companyName, "INFORME DE INVENTARIO",
		fmt.Sprintf("%d productos", len(products))))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow(
		cell{"SKU", 2, align.Left},
		cell{"Producto", 5, align.Left},
		cell{"Categoría", 2, align.Left},
		cell{"Stock", 1, align.Center},
		cell{"P. Venta", 2, align.Right},
	))
	for _, p := range products {
		m.AddRows(row.New(7).Add(
			col.New(2).Add(text.New(p.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(p.Name, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(nonEmpty(p.Category, "—"), props.Text{Size: 8, Top: 1})),
			col.New(1).Add(text.New(strconv.Itoa(p.CurrentStock), props.Text{Size: 8, Top: 1, Align: align.Center})),
			col.New(2).Add(text.New("$"+formatMoney(p.SalePrice.StringFixed(2)), props.Text{Size: 8, Top: 1, Align: align.Right, Right: 1})),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar informe de inventario: %w", err)
	}
	return doc.GetBytes(), nil
}

func reportConfig(title, companyName string) *coreentity.Config {
	return config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(companyName, true).
		Build()
}

// headerRow: empresa (izq) y título + subtítulo del informe (der).
func headerRow(companyName, title, subtitle string) core.Row {
	return row.New(18).Add(
		col.New(6).Add(
			text.New(companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(6).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(subtitle, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

type cell struct {
	label string
	size  int
	align align.Type
}

func tableHeaderRow(cells ...cell) core.Row {
	cols := make([]core.Col, 0, len(cells))
	for _, c := range cells {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en la parte entera de un string
// numérico con punto decimal. Ej: "25000.00" → "25.000,00"
func formatMoney(s string) string {
	intPart, decPart := s, ""
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			intPart, decPart = s[:i], s[i+1:]
			break
		}
	}
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+4)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, intPart[i])
	}
	if decPart != "" {
		buf = append(buf, ',')
		buf = append(buf, decPart...)
	}
	return string(buf)
}
