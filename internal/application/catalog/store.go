// Package catalog mantiene la réplica en memoria del catálogo de la fábrica
// y el estado de trabajo del operador: filtros, página actual, selección para
// acciones masivas y filas con borrado pendiente de confirmación.
//
// El backend es la fuente de verdad; Replace refresca la réplica al por mayor
// después de cada mutación. Los filtros NO destruyen el conjunto cargado: toda
// vista se deriva del snapshot crudo, de modo que restablecer filtros es una
// operación local.
package catalog

import (
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Muebleria-admin/internal/domain/entity"
)

// DefaultPageSize tamaño de página del listado de productos.
const DefaultPageSize = 10

// NotSpecified etiqueta para referencias de tipo/material ausentes.
// Una referencia rota se muestra, nunca es un error.
const NotSpecified = "No especificado"

// Filter criterios activos del listado de productos. Los campos en cero se
// ignoran: conjunción solo de los predicados presentes.
type Filter struct {
	Search     string
	TypeID     int64
	MaterialID int64
	PriceMin   *decimal.Decimal // nil equivale a 0
	PriceMax   *decimal.Decimal // nil equivale a +inf
}

// IsZero indica que no hay ningún criterio activo.
func (f Filter) IsZero() bool {
	return f.Search == "" && f.TypeID == 0 && f.MaterialID == 0 &&
		f.PriceMin == nil && f.PriceMax == nil
}

// Matches evalúa la conjunción de predicados activos sobre un producto.
// El texto busca como subcadena sin distinguir mayúsculas en nombre O artículo;
// tipo y material son igualdad exacta; el precio es un rango inclusivo.
func (f Filter) Matches(p entity.Product) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Article), term) {
			return false
		}
	}
	if f.TypeID != 0 && p.ProductTypeID != f.TypeID {
		return false
	}
	if f.MaterialID != 0 && p.MainMaterialID != f.MaterialID {
		return false
	}
	if f.PriceMin != nil && p.MinPartnerPrice.LessThan(*f.PriceMin) {
		return false
	}
	if f.PriceMax != nil && p.MinPartnerPrice.GreaterThan(*f.PriceMax) {
		return false
	}
	return true
}

// Store réplica en memoria del catálogo más el estado de la vista.
// Seguro para acceso concurrente desde los handlers HTTP.
type Store struct {
	mu       sync.RWMutex
	pageSize int

	products  []entity.Product
	workshops []entity.Workshop
	types     []entity.ProductType
	materials []entity.Material

	typeNames     map[int64]string
	materialNames map[int64]string

	filter   Filter
	page     int
	selected map[int64]struct{}
	pending  map[int64]struct{} // borrados optimistas sin confirmar
}

// NewStore construye un store vacío.
func NewStore(pageSize int) *Store {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Store{
		pageSize:      pageSize,
		typeNames:     map[int64]string{},
		materialNames: map[int64]string{},
		page:          1,
		selected:      map[int64]struct{}{},
		pending:       map[int64]struct{}{},
	}
}

// Replace refresca al por mayor las cuatro colecciones.
// Descarta marcas de borrado pendiente, poda la selección a los ids que
// sobreviven y reajusta la página si quedó fuera de rango. El filtro activo
// se conserva: se aplica sobre los datos nuevos.
func (s *Store) Replace(products []entity.Product, workshops []entity.Workshop, types []entity.ProductType, materials []entity.Material) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = products
	s.workshops = workshops
	s.types = types
	s.materials = materials

	s.typeNames = make(map[int64]string, len(types))
	for _, t := range types {
		s.typeNames[t.ID] = t.Name
	}
	s.materialNames = make(map[int64]string, len(materials))
	for _, m := range materials {
		s.materialNames[m.ID] = m.Name
	}

	s.pending = map[int64]struct{}{}

	// Invariante: selección ⊆ ids presentes en el catálogo
	live := make(map[int64]struct{}, len(products))
	for _, p := range products {
		live[p.ID] = struct{}{}
	}
	for id := range s.selected {
		if _, ok := live[id]; !ok {
			delete(s.selected, id)
		}
	}

	if total := s.totalPagesLocked(); s.page > total {
		s.page = total
	}
}

// ── Filtros ───────────────────────────────────────────────────────────────────

// ApplyFilters activa el filtro y vuelve a la página 1.
func (s *Store) ApplyFilters(f Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
	s.page = 1
}

// ResetFilters limpia el filtro sin tocar el snapshot (operación local).
func (s *Store) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = Filter{}
	s.page = 1
}

// Filter devuelve el filtro activo.
func (s *Store) Filter() Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// ── Paginación ────────────────────────────────────────────────────────────────

// SetPage navega a la página n (1-based). Fuera de rango se rechaza sin
// efecto (no se ajusta al borde) y devuelve false.
func (s *Store) SetPage(n int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 || n > s.totalPagesLocked() {
		return false
	}
	s.page = n
	return true
}

// Page página actual (1-based).
func (s *Store) Page() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// PageSize tamaño de página fijo.
func (s *Store) PageSize() int {
	return s.pageSize
}

// TotalPages = max(1, ceil(filtrados / tamaño de página)).
func (s *Store) TotalPages() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalPagesLocked()
}

func (s *Store) totalPagesLocked() int {
	n := len(s.filteredLocked())
	pages := (n + s.pageSize - 1) / s.pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ── Selección para acciones masivas ───────────────────────────────────────────

// ToggleSelection invierte la marca de selección de un producto.
// Devuelve el estado resultante y false si el id no existe en el catálogo.
func (s *Store) ToggleSelection(id int64) (selected, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.existsLocked(id) {
		return false, false
	}
	if _, found := s.selected[id]; found {
		delete(s.selected, id)
		return false, true
	}
	s.selected[id] = struct{}{}
	return true, true
}

// SelectAllOnPage actúa como toggle sobre la página actual: si todas las
// filas visibles están seleccionadas las deselecciona; si no, las selecciona
// todas. Alcance: la página proyectada, no el conjunto filtrado completo.
func (s *Store) SelectAllOnPage() {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.pageSliceLocked()
	if len(rows) == 0 {
		return
	}
	allChecked := true
	for _, p := range rows {
		if _, ok := s.selected[p.ID]; !ok {
			allChecked = false
			break
		}
	}
	for _, p := range rows {
		if allChecked {
			delete(s.selected, p.ID)
		} else {
			s.selected[p.ID] = struct{}{}
		}
	}
}

// ClearSelection vacía la selección (al salir de la vista de listado).
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = map[int64]struct{}{}
}

// SelectedCount cantidad de productos marcados; controla la visibilidad del
// panel de acciones masivas (visible si > 0).
func (s *Store) SelectedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selected)
}

// SelectedIDs ids seleccionados en orden ascendente.
func (s *Store) SelectedIDs() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int64, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ── Borrado optimista ─────────────────────────────────────────────────────────

// MarkPending oculta la fila de toda proyección mientras se confirma el
// borrado con el backend. Devuelve false si el id no existe o ya está pendiente.
func (s *Store) MarkPending(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.existsLocked(id) {
		return false
	}
	if _, already := s.pending[id]; already {
		return false
	}
	s.pending[id] = struct{}{}
	return true
}

// Restore revierte un borrado optimista rechazado por el backend.
func (s *Store) Restore(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
}

// Commit consuma borrados confirmados: elimina las filas del catálogo y,
// atómicamente para el llamador, sus ids de la selección.
func (s *Store) Commit(ids ...int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gone := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		gone[id] = struct{}{}
	}

	kept := s.products[:0]
	for _, p := range s.products {
		if _, isGone := gone[p.ID]; !isGone {
			kept = append(kept, p)
		}
	}
	s.products = kept

	for id := range gone {
		delete(s.selected, id)
		delete(s.pending, id)
	}

	if total := s.totalPagesLocked(); s.page > total {
		s.page = total
	}
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

// Product busca un producto vivo por id.
func (s *Store) Product(id int64) (entity.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			if _, isPending := s.pending[p.ID]; isPending {
				break
			}
			return p, true
		}
	}
	return entity.Product{}, false
}

// Workshops copia de los talleres cargados.
func (s *Store) Workshops() []entity.Workshop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Workshop, len(s.workshops))
	copy(out, s.workshops)
	return out
}

// Types copia de los tipos de producto cargados.
func (s *Store) Types() []entity.ProductType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.ProductType, len(s.types))
	copy(out, s.types)
	return out
}

// Materials copia de los materiales cargados.
func (s *Store) Materials() []entity.Material {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Material, len(s.materials))
	copy(out, s.materials)
	return out
}

// ── Internos (requieren lock tomado) ──────────────────────────────────────────

func (s *Store) existsLocked(id int64) bool {
	if _, isPending := s.pending[id]; isPending {
		return false
	}
	for _, p := range s.products {
		if p.ID == id {
			return true
		}
	}
	return false
}

// liveLocked productos sin marca de borrado pendiente.
func (s *Store) liveLocked() []entity.Product {
	if len(s.pending) == 0 {
		return s.products
	}
	out := make([]entity.Product, 0, len(s.products))
	for _, p := range s.products {
		if _, isPending := s.pending[p.ID]; !isPending {
			out = append(out, p)
		}
	}
	return out
}

// filteredLocked productos vivos que satisfacen el filtro activo.
func (s *Store) filteredLocked() []entity.Product {
	live := s.liveLocked()
	if s.filter.IsZero() {
		return live
	}
	out := make([]entity.Product, 0, len(live))
	for _, p := range live {
		if s.filter.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// pageSliceLocked corte de la página actual sobre el conjunto filtrado.
func (s *Store) pageSliceLocked() []entity.Product {
	filtered := s.filteredLocked()
	start := (s.page - 1) * s.pageSize
	if start >= len(filtered) {
		return nil
	}
	end := start + s.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}
