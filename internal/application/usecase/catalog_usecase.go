package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Muebleria-admin/internal/application/catalog"
	"github.com/jhoicas/Muebleria-admin/internal/application/dto"
	"github.com/jhoicas/Muebleria-admin/internal/application/notify"
	"github.com/jhoicas/Muebleria-admin/internal/domain"
	"github.com/jhoicas/Muebleria-admin/internal/domain/entity"
	"github.com/jhoicas/Muebleria-admin/pkg/logger"
)

// CatalogUseCase orquesta las mutaciones del catálogo contra el backend.
//
// Reglas generales:
//   - La validación local corta antes de cualquier llamada de red.
//   - Toda mutación exitosa dispara una recarga completa de las cuatro
//     colecciones (el backend es la fuente de verdad; nada se parchea en
//     memoria salvo el borrado optimista).
//   - Toda falla se notifica al operador y devuelve el control: nada es fatal.
type CatalogUseCase struct {
	gw    BackendGateway
	store *catalog.Store
	sink  *notify.Sink
	log   *logger.Logger
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(gw BackendGateway, store *catalog.Store, sink *notify.Sink, log *logger.Logger) *CatalogUseCase {
	return &CatalogUseCase{gw: gw, store: store, sink: sink, log: log}
}

// Store acceso de solo lectura al store para la capa de presentación.
func (uc *CatalogUseCase) Store() *catalog.Store {
	return uc.store
}

// ── Carga ─────────────────────────────────────────────────────────────────────

// Refresh recarga al por mayor productos, talleres, tipos y materiales.
func (uc *CatalogUseCase) Refresh(ctx context.Context) error {
	products, err := uc.gw.ListProducts(ctx)
	if err != nil {
		return uc.loadFailed("productos", err)
	}
	workshops, err := uc.gw.ListWorkshops(ctx)
	if err != nil {
		return uc.loadFailed("talleres", err)
	}
	types, err := uc.gw.ListProductTypes(ctx)
	if err != nil {
		return uc.loadFailed("tipos de producto", err)
	}
	materials, err := uc.gw.ListMaterials(ctx)
	if err != nil {
		return uc.loadFailed("materiales", err)
	}

	uc.store.Replace(products, workshops, types, materials)
	uc.log.Debug().
		Int("products", len(products)).
		Int("workshops", len(workshops)).
		Msg("catálogo recargado")
	return nil
}

func (uc *CatalogUseCase) loadFailed(what string, err error) error {
	uc.sink.Notify(notify.SeverityError, "Error al cargar los datos. Verifique la conexión con el servidor.")
	return fmt.Errorf("recargar %s: %w", what, err)
}

// ── Altas y modificaciones ────────────────────────────────────────────────────

// Create valida el borrador, lo envía al backend, guarda la ruta de talleres
// y recarga el catálogo. La validación local rechaza sin tocar la red.
func (uc *CatalogUseCase) Create(ctx context.Context, draft entity.ProductDraft) (*entity.Product, error) {
	if err := validateDraft(draft); err != nil {
		uc.sink.Notify(notify.SeverityError, "Complete todos los campos obligatorios correctamente")
		return nil, err
	}

	product, err := uc.gw.CreateProduct(ctx, draft)
	if err != nil {
		uc.sink.Notify(notify.SeverityError, mutationMessage("guardar el producto", err))
		return nil, fmt.Errorf("crear producto: %w", err)
	}

	if err := uc.ReplaceWorkshops(ctx, product.ID, draft.WorkshopIDs); err != nil {
		// El producto ya existe en el backend; la recarga posterior refleja
		// la ruta parcial que haya quedado.
		uc.log.Error().Err(err).Int64("product_id", product.ID).Msg("guardar ruta de talleres")
	}

	uc.sink.Notify(notify.SeveritySuccess, "Producto agregado correctamente")
	if err := uc.Refresh(ctx); err != nil {
		return product, err
	}
	return product, nil
}

// Update misma validación que Create; semántica de reemplazo completo.
func (uc *CatalogUseCase) Update(ctx context.Context, id int64, draft entity.ProductDraft) (*entity.Product, error) {
	if err := validateDraft(draft); err != nil {
		uc.sink.Notify(notify.SeverityError, "Complete todos los campos obligatorios correctamente")
		return nil, err
	}

	product, err := uc.gw.UpdateProduct(ctx, id, draft)
	if err != nil {
		uc.sink.Notify(notify.SeverityError, mutationMessage("actualizar el producto", err))
		return nil, fmt.Errorf("actualizar producto %d: %w", id, err)
	}

	if err := uc.ReplaceWorkshops(ctx, id, draft.WorkshopIDs); err != nil {
		uc.log.Error().Err(err).Int64("product_id", id).Msg("guardar ruta de talleres")
	}

	uc.sink.Notify(notify.SeveritySuccess, "Producto actualizado correctamente")
	if err := uc.Refresh(ctx); err != nil {
		return product, err
	}
	return product, nil
}

// validateDraft reglas locales: artículo y nombre obligatorios, precio no
// negativo, parámetros positivos y referencias elegidas.
func validateDraft(d entity.ProductDraft) error {
	switch {
	case d.Article == "":
		return fmt.Errorf("%w: el artículo es obligatorio", domain.ErrValidation)
	case d.Name == "":
		return fmt.Errorf("%w: el nombre es obligatorio", domain.ErrValidation)
	case d.MinPartnerPrice.LessThan(decimal.Zero):
		return fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrValidation)
	case d.Param1 <= 0 || d.Param2 <= 0:
		return fmt.Errorf("%w: los parámetros deben ser positivos", domain.ErrValidation)
	case d.ProductTypeID == 0:
		return fmt.Errorf("%w: seleccione un tipo de producto", domain.ErrValidation)
	case d.MainMaterialID == 0:
		return fmt.Errorf("%w: seleccione un material", domain.ErrValidation)
	}
	return nil
}

// ── Borrados ──────────────────────────────────────────────────────────────────

// Delete borrado optimista: la fila desaparece de las proyecciones de
// inmediato; si el backend rechaza, se restaura y se notifica el motivo.
func (uc *CatalogUseCase) Delete(ctx context.Context, id int64) error {
	if !uc.store.MarkPending(id) {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}

	if err := uc.gw.DeleteProduct(ctx, id); err != nil {
		uc.store.Restore(id)
		uc.sink.Notify(notify.SeverityError, mutationMessage("eliminar el producto", err))
		return fmt.Errorf("eliminar producto %d: %w", id, err)
	}

	uc.store.Commit(id)
	uc.sink.Notify(notify.SeveritySuccess, "Producto eliminado correctamente")
	return nil
}

// DeleteSelected elimina la selección completa en una sola llamada.
// Devuelve la cantidad eliminada; con selección vacía no hay llamada de red.
func (uc *CatalogUseCase) DeleteSelected(ctx context.Context) (int, error) {
	ids := uc.store.SelectedIDs()
	if len(ids) == 0 {
		uc.sink.Notify(notify.SeverityWarning, "Seleccione productos para eliminar")
		return 0, domain.ErrEmptySet
	}

	msg, err := uc.gw.DeleteProductsBatch(ctx, ids)
	if err != nil {
		uc.sink.Notify(notify.SeverityError, mutationMessage("eliminar los productos", err))
		return 0, fmt.Errorf("eliminar lote de %d productos: %w", len(ids), err)
	}

	uc.store.Commit(ids...)
	if msg == "" {
		msg = fmt.Sprintf("Eliminados %d productos", len(ids))
	}
	uc.sink.Notify(notify.SeveritySuccess, msg)
	return len(ids), nil
}

// ── Ruta de talleres ──────────────────────────────────────────────────────────

// ReplaceWorkshops reemplaza TODAS las asociaciones producto-taller: borra las
// existentes y crea las nuevas una a una con orden 1-based (contrato del
// backend: no existe un endpoint atómico). Ante una falla intermedia se
// detiene y reporta cuántas asociaciones quedaron aplicadas; el llamador debe
// recargar para que la réplica no diverja.
func (uc *CatalogUseCase) ReplaceWorkshops(ctx context.Context, productID int64, workshopIDs []int64) error {
	if err := uc.gw.ClearProductWorkshops(ctx, productID); err != nil {
		return fmt.Errorf("limpiar talleres del producto %d: %w", productID, err)
	}
	for i, wid := range workshopIDs {
		if err := uc.gw.AssignWorkshop(ctx, productID, wid, i+1); err != nil {
			return fmt.Errorf("asociar taller %d (aplicadas %d de %d): %w", wid, i, len(workshopIDs), err)
		}
	}
	return nil
}

// ── Calculadora de materia prima ──────────────────────────────────────────────

// CalculateMaterials valida localmente y delega el cálculo al backend.
// Cantidad o parámetros no positivos se rechazan sin llamada de red.
func (uc *CatalogUseCase) CalculateMaterials(ctx context.Context, req dto.CalculationRequest) (int, error) {
	if req.ProductTypeID == 0 || req.MaterialTypeID == 0 ||
		req.Quantity <= 0 || req.Param1 <= 0 || req.Param2 <= 0 {
		uc.sink.Notify(notify.SeverityError, "Complete todos los campos correctamente")
		return 0, fmt.Errorf("%w: parámetros de cálculo inválidos", domain.ErrValidation)
	}

	needed, err := uc.gw.CalculateMaterials(ctx, req)
	if err != nil {
		uc.sink.Notify(notify.SeverityError, mutationMessage("calcular la materia prima", err))
		return 0, fmt.Errorf("calcular materia prima: %w", err)
	}

	uc.sink.Notify(notify.SeveritySuccess, "Cálculo realizado correctamente")
	return needed, nil
}

// ── Respaldo e importación ────────────────────────────────────────────────────

// Backup descarga el respaldo binario y propone el nombre de archivo con la
// fecha actual.
func (uc *CatalogUseCase) Backup(ctx context.Context) ([]byte, string, error) {
	data, err := uc.gw.DownloadBackup(ctx)
	if err != nil {
		uc.sink.Notify(notify.SeverityError, "Error al crear la copia de seguridad")
		return nil, "", fmt.Errorf("descargar respaldo: %w", err)
	}
	name := fmt.Sprintf("furniture_backup_%s.db", time.Now().Format("2006-01-02"))
	uc.sink.Notify(notify.SeveritySuccess, "Copia de seguridad creada correctamente")
	return data, name, nil
}

// Import sube un archivo de datos y recarga el catálogo si el backend lo acepta.
func (uc *CatalogUseCase) Import(ctx context.Context, filename string, file io.Reader) error {
	if err := uc.gw.ImportDatabase(ctx, filename, file); err != nil {
		uc.sink.Notify(notify.SeverityError, mutationMessage("importar los datos", err))
		return fmt.Errorf("importar %q: %w", filename, err)
	}
	uc.sink.Notify(notify.SeveritySuccess, "Datos importados correctamente")
	return uc.Refresh(ctx)
}

// mutationMessage mensaje para el operador: incluye el detalle del backend
// cuando existe; la distinción transporte/rechazo queda solo en el texto.
func mutationMessage(action string, err error) string {
	return fmt.Sprintf("Error al %s: %v", action, err)
}
