// Package reports genera los informes delimitados del catálogo a partir del
// snapshot en memoria vigente al momento de la generación (sin consultas al
// backend).
package reports

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Muebleria-admin/internal/application/catalog"
	"github.com/jhoicas/Muebleria-admin/internal/domain/entity"
)

// Generator produce las variantes de informe sobre un snapshot fijo.
type Generator struct {
	snap catalog.Snapshot
}

// NewGenerator construye el generador.
func NewGenerator(snap catalog.Snapshot) *Generator {
	return &Generator{snap: snap}
}

// ── Informe de productos ──────────────────────────────────────────────────────

// Products una fila por producto: encabezado + 12 columnas documentadas.
func (g *Generator) Products() string {
	var doc csvDoc
	doc.raw("ID", "Artículo", "Nombre", "Tipo de producto", "Material",
		"Precio", "Parámetro 1", "Parámetro 2", "Talleres",
		"Tiempo total (h)", "Fecha de creación", "Fecha de actualización")

	for _, p := range g.snap.Products {
		doc.row(
			strconv.FormatInt(p.ID, 10),
			p.Article,
			p.Name,
			g.snap.TypeName(p.ProductTypeID),
			g.snap.MaterialName(p.MainMaterialID),
			p.MinPartnerPrice.String(),
			formatFloat(p.Param1),
			formatFloat(p.Param2),
			strconv.Itoa(p.WorkshopCount()),
			formatHours(p.TotalProductionTime()),
			formatDate(p.CreatedAt),
			formatDate(p.UpdatedAt),
		)
	}
	return doc.String()
}

// ── Informe de talleres ───────────────────────────────────────────────────────

// Workshops una fila por taller con su carga derivada (determinista).
func (g *Generator) Workshops() string {
	var doc csvDoc
	doc.raw("ID", "Taller", "Trabajadores", "Tiempo de proceso (h)", "Carga (%)")

	for _, w := range g.snap.Workshops {
		doc.row(
			strconv.FormatInt(w.ID, 10),
			w.Name,
			strconv.Itoa(w.WorkerCount),
			formatHours(w.ProcessingTime),
			strconv.Itoa(g.snap.WorkshopLoad(w)),
		)
	}
	return doc.String()
}

// ── Informe de materiales ─────────────────────────────────────────────────────

// Materials una fila por material con el conteo de productos que lo usan.
func (g *Generator) Materials() string {
	var doc csvDoc
	doc.raw("ID", "Material", "Pérdidas (%)", "Usado en productos")

	for _, m := range g.snap.Materials {
		doc.row(
			strconv.FormatInt(m.ID, 10),
			m.Name,
			formatFloat(m.LossPercentage),
			strconv.Itoa(g.snap.ProductsUsingMaterial(m.ID)),
		)
	}
	return doc.String()
}

// ── Informe completo ──────────────────────────────────────────────────────────

// Full documento único con secciones etiquetadas: conteos, tabla de productos
// (talleres unidos por coma), tabla de talleres y estadísticas de precio.
func (g *Generator) Full() string {
	sum := g.snap.Summary()

	var doc csvDoc
	doc.raw("INFORME DE LA EMPRESA DE MUEBLES")
	doc.blank()
	doc.raw("Estadísticas generales")
	doc.raw("Total de productos", strconv.Itoa(sum.TotalProducts))
	doc.raw("Total de talleres", strconv.Itoa(sum.TotalWorkshops))
	doc.raw("Total de tipos de producto", strconv.Itoa(sum.TotalTypes))
	doc.raw("Total de materiales", strconv.Itoa(sum.TotalMaterials))
	doc.blank()

	doc.raw("Productos")
	doc.raw("Artículo", "Nombre", "Tipo", "Material", "Precio", "Talleres", "Tiempo total")
	for _, p := range g.snap.Products {
		names := make([]string, 0, len(p.Workshops))
		for _, w := range p.Workshops {
			names = append(names, w.Name)
		}
		doc.row(
			p.Article,
			p.Name,
			g.snap.TypeName(p.ProductTypeID),
			g.snap.MaterialName(p.MainMaterialID),
			p.MinPartnerPrice.String(),
			strings.Join(names, ", "),
			formatHours(p.TotalProductionTime()),
		)
	}
	doc.blank()

	doc.raw("Talleres")
	doc.raw("Taller", "Trabajadores", "Tiempo de proceso", "Carga")
	for _, w := range g.snap.Workshops {
		doc.row(
			w.Name,
			strconv.Itoa(w.WorkerCount),
			formatHours(w.ProcessingTime),
			fmt.Sprintf("%d%%", g.snap.WorkshopLoad(w)),
		)
	}
	doc.blank()

	doc.raw("Estadísticas")
	doc.raw("Precio promedio", sum.AvgPrice.StringFixed(2))
	doc.raw("Precio mínimo", sum.MinPrice.StringFixed(2))
	doc.raw("Precio máximo", sum.MaxPrice.StringFixed(2))
	doc.raw("Tiempo total de producción", formatHours(sum.TotalProductionTime)+" h")
	return doc.String()
}

// ── Informe estadístico ───────────────────────────────────────────────────────

// Statistics tres tablas de distribución: por tipo, por material y por rango
// de precio, con porcentajes a dos decimales.
func (g *Generator) Statistics() string {
	var doc csvDoc
	doc.raw("INFORME ESTADÍSTICO")
	doc.blank()

	writeDistribution := func(title, header string, buckets []catalog.Bucket) {
		doc.raw(title)
		doc.raw(header, "Cantidad", "Porcentaje (%)")
		for _, b := range buckets {
			doc.raw(b.Label, strconv.Itoa(b.Count), formatPercent(b.Percent))
		}
	}

	writeDistribution("Distribución por tipo de producto", "Tipo", g.snap.DistributionByType())
	doc.blank()
	writeDistribution("Distribución por material", "Material", g.snap.DistributionByMaterial())
	doc.blank()
	writeDistribution("Distribución por rango de precio", "Rango de precio", g.snap.DistributionByPrice())
	return doc.String()
}

// ── Informe personalizado ─────────────────────────────────────────────────────

// CustomParams filtros del informe personalizado. From/To acotan la fecha de
// creación (rango inclusivo); los campos en cero no filtran.
type CustomParams struct {
	TypeID     int64
	MaterialID int64
	From       *time.Time
	To         *time.Time
}

func (p CustomParams) matches(product entity.Product) bool {
	if p.TypeID != 0 && product.ProductTypeID != p.TypeID {
		return false
	}
	if p.MaterialID != 0 && product.MainMaterialID != p.MaterialID {
		return false
	}
	if p.From != nil && product.CreatedAt.Before(*p.From) {
		return false
	}
	if p.To != nil && product.CreatedAt.After(*p.To) {
		return false
	}
	return true
}

// Custom productos filtrados con eco de parámetros, total y valor acumulado.
func (g *Generator) Custom(params CustomParams) string {
	typeLabel := "Todos"
	if params.TypeID != 0 {
		typeLabel = g.snap.TypeName(params.TypeID)
	}
	materialLabel := "Todos"
	if params.MaterialID != 0 {
		materialLabel = g.snap.MaterialName(params.MaterialID)
	}
	fromLabel := "Inicio"
	if params.From != nil {
		fromLabel = params.From.Format("2006-01-02")
	}
	toLabel := "Fin"
	if params.To != nil {
		toLabel = params.To.Format("2006-01-02")
	}

	var doc csvDoc
	doc.raw("INFORME PERSONALIZADO")
	doc.blank()
	doc.raw("Parámetros del informe:")
	doc.raw("Tipo de producto: " + typeLabel)
	doc.raw("Material: " + materialLabel)
	doc.raw("Período: " + fromLabel + " - " + toLabel)
	doc.blank()

	doc.raw("Resultados:")
	doc.raw("Artículo", "Nombre", "Precio", "Tipo", "Material", "Fecha de creación")

	count := 0
	total := decimal.Zero
	for _, p := range g.snap.Products {
		if !params.matches(p) {
			continue
		}
		doc.row(
			p.Article,
			p.Name,
			p.MinPartnerPrice.String(),
			g.snap.TypeName(p.ProductTypeID),
			g.snap.MaterialName(p.MainMaterialID),
			formatDate(p.CreatedAt),
		)
		count++
		total = total.Add(p.MinPartnerPrice)
	}

	doc.blank()
	doc.raw(fmt.Sprintf("Total: %d productos", count))
	doc.raw("Valor total: " + total.StringFixed(2))
	return doc.String()
}
