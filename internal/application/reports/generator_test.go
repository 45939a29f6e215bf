package reports_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Muebleria-admin/internal/application/catalog"
	"github.com/jhoicas/Muebleria-admin/internal/application/reports"
	"github.com/jhoicas/Muebleria-admin/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func testSnapshot() catalog.Snapshot {
	corte := entity.Workshop{ID: 1, Name: "Corte", WorkerCount: 2, ProcessingTime: 4}
	armado := entity.Workshop{ID: 2, Name: "Armado", WorkerCount: 3, ProcessingTime: 6}

	products := []entity.Product{
		{
			ID: 1, Article: "ART-001", Name: "Silla nórdica",
			ProductTypeID: 1, MainMaterialID: 1,
			MinPartnerPrice: decimal.NewFromInt(4500),
			Param1:          0.5, Param2: 0.8,
			Workshops: []entity.Workshop{corte, armado},
			CreatedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			ID: 2, Article: "ART-002", Name: `Mesa "Premium"`,
			ProductTypeID: 2, MainMaterialID: 2,
			MinPartnerPrice: decimal.NewFromInt(15000),
			Param1:          1.2, Param2: 0.9,
			Workshops: []entity.Workshop{corte},
			CreatedAt: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		},
		{
			ID: 3, Article: "ART-003", Name: "Armario",
			ProductTypeID: 2, MainMaterialID: 1,
			MinPartnerPrice: decimal.NewFromInt(60000),
			Param1:          2, Param2: 1.5,
			CreatedAt: time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC),
		},
	}
	types := []entity.ProductType{{ID: 1, Name: "Silla"}, {ID: 2, Name: "Mesa"}}
	materials := []entity.Material{
		{ID: 1, Name: "Roble", LossPercentage: 5},
		{ID: 2, Name: "Pino", LossPercentage: 3.5},
	}
	return catalog.NewSnapshot(products, []entity.Workshop{corte, armado}, types, materials)
}

func lines(doc string) []string {
	return strings.Split(strings.TrimRight(doc, "\n"), "\n")
}

// ──────────────────────────────────────────────────────────────────────────────
// Informe de productos
// ──────────────────────────────────────────────────────────────────────────────

func TestGeneratorProducts_EstructuraDelDocumento(t *testing.T) {
	gen := reports.NewGenerator(testSnapshot())
	got := lines(gen.Products())

	require.Len(t, got, 4, "encabezado + una fila por producto")
	assert.Equal(t,
		"ID;Artículo;Nombre;Tipo de producto;Material;Precio;Parámetro 1;Parámetro 2;Talleres;Tiempo total (h);Fecha de creación;Fecha de actualización",
		got[0], "el encabezado va sin comillas")

	assert.Equal(t,
		`"1";"ART-001";"Silla nórdica";"Silla";"Roble";"4500";"0.5";"0.8";"2";"10";"15/01/2026";""`,
		got[1], "las celdas de datos van entre comillas")
}

// Las comillas dentro de una celda se escapan doblándolas.
func TestGeneratorProducts_EscapaComillas(t *testing.T) {
	gen := reports.NewGenerator(testSnapshot())
	doc := gen.Products()

	assert.Contains(t, doc, `"Mesa ""Premium"""`)
}

func TestGeneratorProducts_TerminaConLF(t *testing.T) {
	gen := reports.NewGenerator(testSnapshot())
	doc := gen.Products()

	assert.True(t, strings.HasSuffix(doc, "\n"))
	assert.NotContains(t, doc, "\r", "los finales de línea son LF, sin CR")
}

// ──────────────────────────────────────────────────────────────────────────────
// Informes de talleres y materiales
// ──────────────────────────────────────────────────────────────────────────────

func TestGeneratorWorkshops_IncluyeCargaDeterminista(t *testing.T) {
	gen := reports.NewGenerator(testSnapshot())
	got := lines(gen.Workshops())

	require.Len(t, got, 3)
	assert.Equal(t, "ID;Taller;Trabajadores;Tiempo de proceso (h);Carga (%)", got[0])
	// Corte: 2 productos × 4h / (2 × 40h) = 10%
	assert.Equal(t, `"1";"Corte";"2";"4";"10"`, got[1])
	// Armado: 1 producto × 6h / (3 × 40h) = 5%
	assert.Equal(t, `"2";"Armado";"3";"6";"5"`, got[2])
}

func TestGeneratorMaterials_ConteoDeUso(t *testing.T) {
	gen := reports.NewGenerator(testSnapshot())
	got := lines(gen.Materials())

	require.Len(t, got, 3)
	assert.Equal(t, `"1";"Roble";"5";"2"`, got[1])
	assert.Equal(t, `"2";"Pino";"3.5";"1"`, got[2])
}

// ──────────────────────────────────────────────────────────────────────────────
// Informe completo
// ──────────────────────────────────────────────────────────────────────────────

func TestGeneratorFull_SeccionesYTotales(t *testing.T) {
	gen := reports.NewGenerator(testSnapshot())
	doc := gen.Full()

	assert.True(t, strings.HasPrefix(doc, "INFORME DE LA EMPRESA DE MUEBLES\n"))
	assert.Contains(t, doc, "Total de productos;3")
	assert.Contains(t, doc, "Total de talleres;2")
	assert.Contains(t, doc, `"Corte, Armado"`, "los talleres del producto van unidos por coma en una celda")
	assert.Contains(t, doc, "Precio promedio;26500.00")
	assert.Contains(t, doc, "Precio mínimo;4500.00")
	assert.Contains(t, doc, "Precio máximo;60000.00")
	assert.Contains(t, doc, `"10%"`, "la carga del taller lleva el signo de porcentaje")
}

// ──────────────────────────────────────────────────────────────────────────────
// Informe estadístico
// ──────────────────────────────────────────────────────────────────────────────

func TestGeneratorStatistics_Distribuciones(t *testing.T) {
	gen := reports.NewGenerator(testSnapshot())
	doc := gen.Statistics()

	assert.True(t, strings.HasPrefix(doc, "INFORME ESTADÍSTICO\n"))
	assert.Contains(t, doc, "Distribución por tipo de producto")
	assert.Contains(t, doc, "Distribución por material")
	assert.Contains(t, doc, "Distribución por rango de precio")

	assert.Contains(t, doc, "Silla;1;33.33", "porcentajes con dos decimales")
	assert.Contains(t, doc, "Mesa;2;66.67")

	// Los cinco rangos de precio aparecen siempre, incluidos los vacíos
	assert.Contains(t, doc, "Hasta 5000;1;33.33")
	assert.Contains(t, doc, "5000 - 10000;0;0.00")
	assert.Contains(t, doc, "20000 - 50000;0;0.00")
	assert.Contains(t, doc, "Más de 50000;1;33.33")
}

// ──────────────────────────────────────────────────────────────────────────────
// Informe personalizado
// ──────────────────────────────────────────────────────────────────────────────

func TestGeneratorCustom_SinFiltrosEcoTodos(t *testing.T) {
	gen := reports.NewGenerator(testSnapshot())
	doc := gen.Custom(reports.CustomParams{})

	assert.Contains(t, doc, "Tipo de producto: Todos")
	assert.Contains(t, doc, "Material: Todos")
	assert.Contains(t, doc, "Período: Inicio - Fin")
	assert.Contains(t, doc, "Total: 3 productos")
	assert.Contains(t, doc, "Valor total: 79500.00")
}

func TestGeneratorCustom_FiltraPorTipoYMaterial(t *testing.T) {
	gen := reports.NewGenerator(testSnapshot())
	doc := gen.Custom(reports.CustomParams{TypeID: 2, MaterialID: 1})

	assert.Contains(t, doc, "Tipo de producto: Mesa")
	assert.Contains(t, doc, "Material: Roble")
	assert.Contains(t, doc, `"ART-003"`)
	assert.NotContains(t, doc, `"ART-001"`, "tipo 1 queda fuera")
	assert.NotContains(t, doc, `"ART-002"`, "material 2 queda fuera")
	assert.Contains(t, doc, "Total: 1 productos")
	assert.Contains(t, doc, "Valor total: 60000.00")
}

// El rango de fechas acota la fecha de creación con límites inclusivos.
func TestGeneratorCustom_FiltraPorFechas(t *testing.T) {
	gen := reports.NewGenerator(testSnapshot())

	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
	doc := gen.Custom(reports.CustomParams{From: &from, To: &to})

	assert.Contains(t, doc, "Período: 2026-03-02 - 2026-04-30")
	assert.Contains(t, doc, `"ART-002"`)
	assert.NotContains(t, doc, `"ART-001"`, "creado antes del rango")
	assert.NotContains(t, doc, `"ART-003"`, "creado después del rango")
	assert.Contains(t, doc, "Total: 1 productos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Descarga
// ──────────────────────────────────────────────────────────────────────────────

func TestFilename_FormatoConFecha(t *testing.T) {
	at := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "products_report_2026-08-28.csv", reports.Filename("products", at))
	assert.Equal(t, "custom_report_2026-08-28.csv", reports.Filename("custom", at))
}

func TestWithBOM_AnteponeElBOM(t *testing.T) {
	body, err := reports.WithBOM("ID;Nombre\n")
	require.NoError(t, err)

	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, body[:3], "el documento inicia con el BOM UTF-8")
	assert.Equal(t, "ID;Nombre\n", string(body[3:]), "el contenido queda intacto tras el BOM")
}
