package catalog

import (
	"github.com/jhoicas/Muebleria-admin/internal/domain/entity"
)

// ProductRow fila proyectada del listado: el producto más los campos
// derivados que necesita la vista.
type ProductRow struct {
	entity.Product
	TypeName      string
	MaterialName  string
	TotalTime     float64
	WorkshopCount int
	Selected      bool
}

// PageInfo metadatos de la página proyectada ("Mostrando X–Y de Z").
type PageInfo struct {
	Page       int
	PageSize   int
	TotalPages int
	From       int // 1-based, 0 si la página está vacía
	To         int
	Filtered   int // registros que pasan el filtro
	Total      int // registros vivos sin filtrar
}

// PageRows proyecta la página actual del conjunto filtrado.
func (s *Store) PageRows() []ProductRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slice := s.pageSliceLocked()
	rows := make([]ProductRow, 0, len(slice))
	for _, p := range slice {
		_, isSelected := s.selected[p.ID]
		rows = append(rows, ProductRow{
			Product:       p,
			TypeName:      s.typeNameLocked(p.ProductTypeID),
			MaterialName:  s.materialNameLocked(p.MainMaterialID),
			TotalTime:     p.TotalProductionTime(),
			WorkshopCount: p.WorkshopCount(),
			Selected:      isSelected,
		})
	}
	return rows
}

// FilteredProducts conjunto filtrado completo, sin paginar (para el export
// con los filtros del listado).
func (s *Store) FilteredProducts() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	filtered := s.filteredLocked()
	out := make([]entity.Product, len(filtered))
	copy(out, filtered)
	return out
}

// PageInfo calcula los metadatos de la página actual.
func (s *Store) PageInfo() PageInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := len(s.filteredLocked())
	info := PageInfo{
		Page:       s.page,
		PageSize:   s.pageSize,
		TotalPages: s.totalPagesLocked(),
		Filtered:   filtered,
		Total:      len(s.liveLocked()),
	}
	if filtered == 0 {
		return info
	}
	info.From = (s.page-1)*s.pageSize + 1
	if info.From > filtered {
		info.From = 0
		return info
	}
	info.To = s.page * s.pageSize
	if info.To > filtered {
		info.To = filtered
	}
	return info
}

// TypeName nombre del tipo o NotSpecified si la referencia no existe.
func (s *Store) TypeName(id int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.typeNameLocked(id)
}

// MaterialName nombre del material o NotSpecified si la referencia no existe.
func (s *Store) MaterialName(id int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.materialNameLocked(id)
}

func (s *Store) typeNameLocked(id int64) string {
	if name, ok := s.typeNames[id]; ok && name != "" {
		return name
	}
	return NotSpecified
}

func (s *Store) materialNameLocked(id int64) string {
	if name, ok := s.materialNames[id]; ok && name != "" {
		return name
	}
	return NotSpecified
}

// Snapshot captura el estado vivo actual (sin filas pendientes de borrado)
// para generar informes sin volver a consultar el backend.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	live := s.liveLocked()
	products := make([]entity.Product, len(live))
	copy(products, live)
	workshops := make([]entity.Workshop, len(s.workshops))
	copy(workshops, s.workshops)
	types := make([]entity.ProductType, len(s.types))
	copy(types, s.types)
	materials := make([]entity.Material, len(s.materials))
	copy(materials, s.materials)

	return NewSnapshot(products, workshops, types, materials)
}
