package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Muebleria-admin/internal/application/catalog"
	"github.com/jhoicas/Muebleria-admin/internal/application/dto"
	"github.com/jhoicas/Muebleria-admin/internal/application/notify"
	"github.com/jhoicas/Muebleria-admin/internal/application/usecase"
	"github.com/jhoicas/Muebleria-admin/internal/domain/entity"
	apphttp "github.com/jhoicas/Muebleria-admin/internal/interfaces/http"
	"github.com/jhoicas/Muebleria-admin/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// stubGateway gateway inerte: los endpoints de vista no tocan la red, así que
// basta con devolver las colecciones fijas en la recarga.
type stubGateway struct {
	products []entity.Product
	fail     error
	batchIDs []int64
}

func (s *stubGateway) ListProducts(context.Context) ([]entity.Product, error) {
	return s.products, s.fail
}
func (s *stubGateway) ListWorkshops(context.Context) ([]entity.Workshop, error) {
	return []entity.Workshop{{ID: 1, Name: "Corte", WorkerCount: 2, ProcessingTime: 4}}, nil
}
func (s *stubGateway) ListProductTypes(context.Context) ([]entity.ProductType, error) {
	return []entity.ProductType{{ID: 1, Name: "Silla"}}, nil
}
func (s *stubGateway) ListMaterials(context.Context) ([]entity.Material, error) {
	return []entity.Material{{ID: 1, Name: "Roble", LossPercentage: 5}}, nil
}
func (s *stubGateway) GetProduct(context.Context, int64) (*entity.Product, error) {
	return nil, nil
}
func (s *stubGateway) CreateProduct(context.Context, entity.ProductDraft) (*entity.Product, error) {
	return &entity.Product{ID: 99}, s.fail
}
func (s *stubGateway) UpdateProduct(context.Context, int64, entity.ProductDraft) (*entity.Product, error) {
	return &entity.Product{ID: 99}, s.fail
}
func (s *stubGateway) DeleteProduct(context.Context, int64) error { return s.fail }
func (s *stubGateway) DeleteProductsBatch(_ context.Context, ids []int64) (string, error) {
	s.batchIDs = ids
	return "", s.fail
}
func (s *stubGateway) ClearProductWorkshops(context.Context, int64) error { return s.fail }
func (s *stubGateway) AssignWorkshop(context.Context, int64, int64, int) error {
	return s.fail
}
func (s *stubGateway) CalculateMaterials(context.Context, dto.CalculationRequest) (int, error) {
	return 37, s.fail
}
func (s *stubGateway) DownloadBackup(context.Context) ([]byte, error) {
	return []byte("SQLite format 3"), s.fail
}
func (s *stubGateway) ImportDatabase(context.Context, string, io.Reader) error { return s.fail }

// stubPDF evita generar un PDF real en los tests de rutas.
type stubPDF struct{}

func (stubPDF) Generate(catalog.Snapshot) ([]byte, error) { return []byte("%PDF-1.7"), nil }

func seedProducts(n int) []entity.Product {
	products := make([]entity.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, entity.Product{
			ID:              int64(i),
			Article:         "ART",
			Name:            "Mueble",
			ProductTypeID:   1,
			MainMaterialID:  1,
			MinPartnerPrice: decimal.NewFromInt(int64(i) * 1000),
		})
	}
	return products
}

// buildTestApp aplicación Fiber con el router completo y el catálogo cargado.
func buildTestApp(t *testing.T, gw *stubGateway) *fiber.App {
	t.Helper()

	log := logger.New(logger.Config{Env: "production", Level: "error"})
	sink := notify.NewSink(time.Minute, log)
	store := catalog.NewStore(10)
	uc := usecase.NewCatalogUseCase(gw, store, sink, log)
	require.NoError(t, uc.Refresh(context.Background()))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{CatalogUC: uc, Sink: sink, PDF: stubPDF{}})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeList(t *testing.T, resp *http.Response) dto.ProductListResponse {
	t.Helper()
	defer resp.Body.Close()
	var out dto.ProductListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado y paginación
// ──────────────────────────────────────────────────────────────────────────────

func TestListado_PaginaConMetadatos(t *testing.T) {
	app := buildTestApp(t, &stubGateway{products: seedProducts(25)})

	resp := doJSON(t, app, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeList(t, resp)
	assert.Len(t, out.Items, 10)
	assert.Equal(t, 1, out.Page.Page)
	assert.Equal(t, 3, out.Page.TotalPages)
	assert.Equal(t, 1, out.Page.From)
	assert.Equal(t, 10, out.Page.To)
	assert.Equal(t, 25, out.Page.Total)
	assert.Equal(t, "Silla", out.Items[0].TypeName, "las filas llevan los nombres resueltos")
}

func TestListado_NavegarYRechazarFueraDeRango(t *testing.T) {
	app := buildTestApp(t, &stubGateway{products: seedProducts(25)})

	resp := doJSON(t, app, http.MethodPost, "/api/page/3", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeList(t, resp)
	assert.Equal(t, 3, out.Page.Page)
	assert.Len(t, out.Items, 5)

	resp = doJSON(t, app, http.MethodPost, "/api/page/9", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "PAGE_RANGE")

	resp = doJSON(t, app, http.MethodGet, "/api/products", nil)
	out = decodeList(t, resp)
	assert.Equal(t, 3, out.Page.Page, "la página actual no cambia tras un rechazo")
}

func TestFiltros_AplicarYRestablecer(t *testing.T) {
	app := buildTestApp(t, &stubGateway{products: seedProducts(25)})

	resp := doJSON(t, app, http.MethodPost, "/api/filters", dto.FilterRequest{
		PriceMin: pricePtr(20000),
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeList(t, resp)
	assert.Equal(t, 6, out.Page.Filtered, "productos de 20000 a 25000")
	assert.Equal(t, 25, out.Page.Total)
	require.NotNil(t, out.Filter.PriceMin)
	assert.Equal(t, "20000", out.Filter.PriceMin.String(), "la respuesta hace eco del filtro activo")

	resp = doJSON(t, app, http.MethodPost, "/api/filters/reset", nil)
	out = decodeList(t, resp)
	assert.Equal(t, 25, out.Page.Filtered, "restablecer recupera el conjunto completo")
}

func pricePtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestProductoPorID_NoEncontrado(t *testing.T) {
	app := buildTestApp(t, &stubGateway{products: seedProducts(3)})

	resp := doJSON(t, app, http.MethodGet, "/api/products/99", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "NOT_FOUND")
}

// ──────────────────────────────────────────────────────────────────────────────
// Selección y borrado masivo
// ──────────────────────────────────────────────────────────────────────────────

func TestSeleccion_ToggleYEstado(t *testing.T) {
	app := buildTestApp(t, &stubGateway{products: seedProducts(5)})

	resp := doJSON(t, app, http.MethodPost, "/api/selection/toggle/2", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var sel dto.SelectionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sel))
	resp.Body.Close()
	assert.Equal(t, []int64{2}, sel.IDs)
	assert.Equal(t, 1, sel.Count)

	resp = doJSON(t, app, http.MethodPost, "/api/selection/toggle/99", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestBorradoMasivo_SeleccionVacia(t *testing.T) {
	app := buildTestApp(t, &stubGateway{products: seedProducts(5)})

	resp := doJSON(t, app, http.MethodDelete, "/api/products/selected", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "EMPTY_SELECTION")
}

func TestBorradoMasivo_EliminaLaSeleccion(t *testing.T) {
	gw := &stubGateway{products: seedProducts(5)}
	app := buildTestApp(t, gw)

	doJSON(t, app, http.MethodPost, "/api/selection/toggle/1", nil).Body.Close()
	doJSON(t, app, http.MethodPost, "/api/selection/toggle/3", nil).Body.Close()

	resp := doJSON(t, app, http.MethodDelete, "/api/products/selected", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	assert.Equal(t, 2, out["deleted"])
	assert.Equal(t, []int64{1, 3}, gw.batchIDs, "los ids viajan en una sola llamada")
}

// ──────────────────────────────────────────────────────────────────────────────
// Informes y descargas
// ──────────────────────────────────────────────────────────────────────────────

func TestInformeCSV_CabecerasYBOM(t *testing.T) {
	app := buildTestApp(t, &stubGateway{products: seedProducts(3)})

	resp := doJSON(t, app, http.MethodGet, "/api/reports/products", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Regexp(t, `attachment; filename="products_report_\d{4}-\d{2}-\d{2}\.csv"`,
		resp.Header.Get("Content-Disposition"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, body[:3], "la descarga inicia con el BOM UTF-8")
	assert.Contains(t, string(body), "ID;Artículo;Nombre")
	assert.Equal(t, 4, strings.Count(string(body), "\n"), "encabezado + 3 productos")
}

func TestInformeDesconocido_404(t *testing.T) {
	app := buildTestApp(t, &stubGateway{products: seedProducts(1)})

	resp := doJSON(t, app, http.MethodGet, "/api/reports/inexistente", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestInformePersonalizado_FechaInvalida(t *testing.T) {
	app := buildTestApp(t, &stubGateway{products: seedProducts(1)})

	resp := doJSON(t, app, http.MethodGet, "/api/reports/custom?date_from=28-08-2026", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "VALIDATION")
}

func TestInformePDF_Descarga(t *testing.T) {
	app := buildTestApp(t, &stubGateway{products: seedProducts(1)})

	resp := doJSON(t, app, http.MethodGet, "/api/reports/catalog.pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "%PDF-1.7", string(body))
}

func TestRespaldo_DescargaConNombre(t *testing.T) {
	app := buildTestApp(t, &stubGateway{products: seedProducts(1)})

	resp := doJSON(t, app, http.MethodGet, "/api/backup", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	assert.Regexp(t, `attachment; filename="furniture_backup_\d{4}-\d{2}-\d{2}\.db"`,
		resp.Header.Get("Content-Disposition"))
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "SQLite format 3", string(body))
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard y calculadora
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_ConteosYDistribuciones(t *testing.T) {
	app := buildTestApp(t, &stubGateway{products: seedProducts(4)})

	resp := doJSON(t, app, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var out dto.DashboardResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	assert.Equal(t, 4, out.TotalProducts)
	assert.Equal(t, 1, out.TotalWorkshops)
	assert.Len(t, out.RecentProducts, 4)
	assert.Len(t, out.ByPrice, 5, "los cinco rangos de precio aparecen siempre")
	require.NotEmpty(t, out.ByType)
	assert.Equal(t, 100, out.ByType[0].Percent)
}

func TestCalculadora_Delega(t *testing.T) {
	app := buildTestApp(t, &stubGateway{products: seedProducts(1)})

	resp := doJSON(t, app, http.MethodPost, "/api/calculate-materials", dto.CalculationRequest{
		ProductTypeID: 1, MaterialTypeID: 1, Quantity: 10, Param1: 1.5, Param2: 0.8,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.CalculationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	assert.Equal(t, 37, out.RawMaterialNeeded)
}

func TestCalculadora_ValidacionLocal(t *testing.T) {
	app := buildTestApp(t, &stubGateway{products: seedProducts(1)})

	resp := doJSON(t, app, http.MethodPost, "/api/calculate-materials", dto.CalculationRequest{
		ProductTypeID: 1, MaterialTypeID: 1, Quantity: 0, Param1: 1, Param2: 1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Notificaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestNotificaciones_ReflejanLasMutaciones(t *testing.T) {
	app := buildTestApp(t, &stubGateway{products: seedProducts(3)})

	doJSON(t, app, http.MethodDelete, "/api/products/2", nil).Body.Close()

	resp := doJSON(t, app, http.MethodGet, "/api/notifications", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var active []notify.Notification
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&active))
	resp.Body.Close()

	require.NotEmpty(t, active)
	last := active[len(active)-1]
	assert.Equal(t, notify.SeveritySuccess, last.Severity)
	assert.Contains(t, last.Message, "eliminado")
}
