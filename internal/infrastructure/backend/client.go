// Package backend implementa el cliente REST del API de la fábrica.
//
// El backend es la fuente de verdad del catálogo; este cliente traduce sus
// respuestas JSON a entidades y sus errores ({"detail": ...}) a errores de
// dominio. Sin reintentos ni autenticación: toda falla se propaga al caso de
// uso, que la convierte en una notificación para el operador.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Muebleria-admin/internal/application/dto"
	"github.com/jhoicas/Muebleria-admin/internal/domain"
	"github.com/jhoicas/Muebleria-admin/internal/domain/entity"
)

// maxErrorBody límite de lectura para cuerpos de error del backend.
const maxErrorBody = 64 * 1024

// Client cliente HTTP del API REST de la fábrica.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New construye el cliente. timeout es el límite de red por llamada; cada
// petición además acepta un context del llamador.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ── Colecciones ───────────────────────────────────────────────────────────────

// ListProducts obtiene todos los productos con sus talleres asociados.
func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	var wires []productWire
	if err := c.getJSON(ctx, "/products", &wires); err != nil {
		return nil, err
	}
	products := make([]entity.Product, 0, len(wires))
	for _, w := range wires {
		products = append(products, w.toEntity())
	}
	return products, nil
}

// ListWorkshops obtiene todos los talleres.
func (c *Client) ListWorkshops(ctx context.Context) ([]entity.Workshop, error) {
	var wires []workshopWire
	if err := c.getJSON(ctx, "/workshops", &wires); err != nil {
		return nil, err
	}
	workshops := make([]entity.Workshop, 0, len(wires))
	for _, w := range wires {
		workshops = append(workshops, w.toEntity())
	}
	return workshops, nil
}

// ListProductTypes obtiene el conjunto cerrado de tipos de producto.
func (c *Client) ListProductTypes(ctx context.Context) ([]entity.ProductType, error) {
	var wires []productTypeWire
	if err := c.getJSON(ctx, "/product-types", &wires); err != nil {
		return nil, err
	}
	types := make([]entity.ProductType, 0, len(wires))
	for _, w := range wires {
		types = append(types, w.toEntity())
	}
	return types, nil
}

// ListMaterials obtiene todos los materiales.
func (c *Client) ListMaterials(ctx context.Context) ([]entity.Material, error) {
	var wires []materialWire
	if err := c.getJSON(ctx, "/materials", &wires); err != nil {
		return nil, err
	}
	materials := make([]entity.Material, 0, len(wires))
	for _, w := range wires {
		materials = append(materials, w.toEntity())
	}
	return materials, nil
}

// GetProduct obtiene un producto por ID.
func (c *Client) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	var wire productWire
	if err := c.getJSON(ctx, "/products/"+strconv.FormatInt(id, 10), &wire); err != nil {
		return nil, err
	}
	product := wire.toEntity()
	return &product, nil
}

// ── Mutaciones ────────────────────────────────────────────────────────────────

// CreateProduct crea un producto y devuelve la versión persistida.
func (c *Client) CreateProduct(ctx context.Context, draft entity.ProductDraft) (*entity.Product, error) {
	var wire productWire
	if err := c.doJSON(ctx, http.MethodPost, "/products", draftToPayload(draft), &wire); err != nil {
		return nil, err
	}
	product := wire.toEntity()
	return &product, nil
}

// UpdateProduct reemplaza por completo los campos de un producto (no es patch parcial).
func (c *Client) UpdateProduct(ctx context.Context, id int64, draft entity.ProductDraft) (*entity.Product, error) {
	var wire productWire
	path := "/products/" + strconv.FormatInt(id, 10)
	if err := c.doJSON(ctx, http.MethodPut, path, draftToPayload(draft), &wire); err != nil {
		return nil, err
	}
	product := wire.toEntity()
	return &product, nil
}

// DeleteProduct elimina un producto por ID.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/products/"+strconv.FormatInt(id, 10), nil, nil)
}

// DeleteProductsBatch elimina varios productos en una sola llamada.
// Devuelve el mensaje del backend (puede incluir el conteo real).
func (c *Client) DeleteProductsBatch(ctx context.Context, ids []int64) (string, error) {
	var out batchDeleteResponse
	if err := c.doJSON(ctx, http.MethodDelete, "/products/batch", ids, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ClearProductWorkshops elimina todas las asociaciones producto-taller.
func (c *Client) ClearProductWorkshops(ctx context.Context, productID int64) error {
	path := fmt.Sprintf("/products/%d/workshops", productID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// AssignWorkshop asocia un taller a un producto en la posición indicada (1-based).
func (c *Client) AssignWorkshop(ctx context.Context, productID, workshopID int64, order int) error {
	path := fmt.Sprintf("/products/%d/workshops/%d?order=%d", productID, workshopID, order)
	return c.doJSON(ctx, http.MethodPost, path, nil, nil)
}

// ── Calculadora de materia prima ──────────────────────────────────────────────

// CalculateMaterials delega el cálculo al backend (fórmula con coeficiente de
// producción y porcentaje de pérdida). La validación local ocurre en el caso de uso.
func (c *Client) CalculateMaterials(ctx context.Context, req dto.CalculationRequest) (int, error) {
	var out calculationWire
	if err := c.doJSON(ctx, http.MethodPost, "/calculate-materials", req, &out); err != nil {
		return 0, err
	}
	return out.RawMaterialNeeded, nil
}

// ── Respaldo e importación ────────────────────────────────────────────────────

// DownloadBackup descarga el archivo binario de respaldo de la base de datos.
func (c *Client) DownloadBackup(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/backup", nil)
	if err != nil {
		return nil, fmt.Errorf("backend: crear petición de respaldo: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend: descargar respaldo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("backend: leer respaldo: %w", err)
	}
	return data, nil
}

// ImportDatabase sube un archivo de datos al backend (multipart, campo "file").
func (c *Client) ImportDatabase(ctx context.Context, filename string, file io.Reader) error {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("backend: preparar multipart: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("backend: copiar archivo: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("backend: cerrar multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/import", &body)
	if err != nil {
		return fmt.Errorf("backend: crear petición de importación: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend: importar datos: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// ── Plomería HTTP ─────────────────────────────────────────────────────────────

// getJSON ejecuta un GET y deserializa la respuesta en out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// doJSON ejecuta una petición con cuerpo JSON opcional y deserializa la
// respuesta en out (si out no es nil). Los estados no-2xx se convierten en
// errores que envuelven domain.ErrBackend con el campo "detail" si existe.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend: serializar petición: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("backend: crear petición %s %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("backend: %s %s cancelado: %w", method, path, ctx.Err())
		}
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: deserializar respuesta de %s: %w", path, err)
	}
	return nil
}

// statusError convierte un estado HTTP no exitoso en error de dominio.
// El backend responde errores como {"detail": "mensaje"}.
func (c *Client) statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var wire errorWire
	if err := json.Unmarshal(raw, &wire); err == nil && wire.Detail != "" {
		return fmt.Errorf("%w: %s (HTTP %d)", domain.ErrBackend, wire.Detail, resp.StatusCode)
	}
	return fmt.Errorf("%w: HTTP %d en %s", domain.ErrBackend, resp.StatusCode, requestPath(resp))
}

func requestPath(resp *http.Response) string {
	if resp.Request == nil || resp.Request.URL == nil {
		return "?"
	}
	u := *resp.Request.URL
	u.RawQuery = ""
	return (&url.URL{Path: u.Path}).String()
}
