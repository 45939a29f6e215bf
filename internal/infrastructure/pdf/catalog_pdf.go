// Package pdf genera la versión imprimible del informe de catálogo con
// Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa de muebles  │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos / talleres / tipos / materiales          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Artículo | Nombre | Tipo | Material | Precio | Horas │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: estadísticas de precio                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
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

	"github.com/jhoicas/Muebleria-admin/internal/application/catalog"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 46, Green: 125, Blue: 50}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// CatalogPDFGenerator genera el informe de catálogo en PDF.
type CatalogPDFGenerator struct{}

// NewCatalogPDFGenerator construye el generador.
func NewCatalogPDFGenerator() *CatalogPDFGenerator { return &CatalogPDFGenerator{} }

// Generate produce el documento y devuelve sus bytes.
func (g *CatalogPDFGenerator) Generate(snap catalog.Snapshot) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de catálogo", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(snap.Summary()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range productRows(snap) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(statsRow(snap.Summary()))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow() core.Row {
	fecha := time.Now().Format("02/01/2006")
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Empresa de muebles — Informe de catálogo", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 9, Top: 4, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func summaryRow(sum catalog.Summary) core.Row {
	cell := func(label string, value int) core.Col {
		return col.New(3).Add(
			text.New(strconv.Itoa(value), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 1}),
			text.New(label, props.Text{Size: 8, Align: align.Center, Top: 7, Color: colorGray}),
		)
	}
	return row.New(13).Add(
		cell("Productos", sum.TotalProducts),
		cell("Talleres", sum.TotalWorkshops),
		cell("Tipos", sum.TotalTypes),
		cell("Materiales", sum.TotalMaterials),
	)
}

func tableHeaderRow() core.Row {
	header := func(w int, label string) core.Col {
		return col.New(w).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)
	}
	return row.New(6).Add(
		header(2, "Artículo"),
		header(3, "Nombre"),
		header(2, "Tipo"),
		header(2, "Material"),
		header(2, "Precio"),
		header(1, "Horas"),
	)
}

func productRows(snap catalog.Snapshot) []core.Row {
	rows := make([]core.Row, 0, len(snap.Products))
	for _, p := range snap.Products {
		cell := func(w int, value string) core.Col {
			return col.New(w).Add(text.New(value, props.Text{Size: 8, Top: 1}))
		}
		rows = append(rows, row.New(5).Add(
			cell(2, p.Article),
			cell(3, p.Name),
			cell(2, snap.TypeName(p.ProductTypeID)),
			cell(2, snap.MaterialName(p.MainMaterialID)),
			cell(2, p.MinPartnerPrice.StringFixed(2)),
			cell(1, strconv.FormatFloat(p.TotalProductionTime(), 'f', -1, 64)),
		))
	}
	return rows
}

func statsRow(sum catalog.Summary) core.Row {
	stat := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 9, Top: 5}),
		)
	}
	return row.New(12).Add(
		stat("Precio promedio", sum.AvgPrice.StringFixed(2)),
		stat("Precio mínimo", sum.MinPrice.StringFixed(2)),
		stat("Precio máximo", sum.MaxPrice.StringFixed(2)),
	)
}
