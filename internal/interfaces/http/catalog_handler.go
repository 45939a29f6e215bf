package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Muebleria-admin/internal/application/dto"
	"github.com/jhoicas/Muebleria-admin/internal/application/notify"
	"github.com/jhoicas/Muebleria-admin/internal/application/usecase"
	"github.com/jhoicas/Muebleria-admin/internal/domain"
)

// CatalogHandler expone la vista del catálogo: listado paginado, filtros,
// catálogos de referencia, dashboard y notificaciones.
type CatalogHandler struct {
	uc   *usecase.CatalogUseCase
	sink *notify.Sink
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase, sink *notify.Sink) *CatalogHandler {
	return &CatalogHandler{uc: uc, sink: sink}
}

// List página actual del conjunto filtrado más los metadatos de paginación.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	store := h.uc.Store()
	rows := store.PageRows()
	items := make([]dto.ProductRowResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.FromProductRow(row))
	}
	return c.JSON(dto.ProductListResponse{
		Items:  items,
		Page:   dto.FromPageInfo(store.PageInfo()),
		Filter: dto.FromFilter(store.Filter()),
	})
}

// ListAll conjunto filtrado completo, sin paginar (exportaciones y selectores).
func (h *CatalogHandler) ListAll(c *fiber.Ctx) error {
	store := h.uc.Store()

	selected := make(map[int64]struct{})
	for _, id := range store.SelectedIDs() {
		selected[id] = struct{}{}
	}

	filtered := store.FilteredProducts()
	items := make([]dto.ProductRowResponse, 0, len(filtered))
	for _, p := range filtered {
		_, isSelected := selected[p.ID]
		items = append(items, dto.ProductRowResponse{
			ID:              p.ID,
			Article:         p.Article,
			Name:            p.Name,
			TypeName:        store.TypeName(p.ProductTypeID),
			MaterialName:    store.MaterialName(p.MainMaterialID),
			MinPartnerPrice: p.MinPartnerPrice,
			Param1:          p.Param1,
			Param2:          p.Param2,
			WorkshopCount:   p.WorkshopCount(),
			TotalTime:       p.TotalProductionTime(),
			Selected:        isSelected,
			CreatedAt:       p.CreatedAt,
			UpdatedAt:       p.UpdatedAt,
		})
	}
	return c.JSON(items)
}

// GetByID producto vivo por id desde la réplica en memoria.
func (h *CatalogHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	store := h.uc.Store()
	p, ok := store.Product(int64(id))
	if !ok {
		return fail(c, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id))
	}
	return c.JSON(dto.ProductRowResponse{
		ID:              p.ID,
		Article:         p.Article,
		Name:            p.Name,
		TypeName:        store.TypeName(p.ProductTypeID),
		MaterialName:    store.MaterialName(p.MainMaterialID),
		MinPartnerPrice: p.MinPartnerPrice,
		Param1:          p.Param1,
		Param2:          p.Param2,
		WorkshopCount:   p.WorkshopCount(),
		TotalTime:       p.TotalProductionTime(),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	})
}

// ApplyFilters activa los criterios y devuelve la primera página del resultado.
func (h *CatalogHandler) ApplyFilters(c *fiber.Ctx) error {
	var in dto.FilterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	h.uc.Store().ApplyFilters(in.ToFilter())
	return h.List(c)
}

// ResetFilters limpia los criterios sin recargar datos (operación local).
func (h *CatalogHandler) ResetFilters(c *fiber.Ctx) error {
	h.uc.Store().ResetFilters()
	return h.List(c)
}

// SetPage navega a la página pedida; fuera de rango se rechaza sin efecto.
func (h *CatalogHandler) SetPage(c *fiber.Ctx) error {
	n, err := c.ParamsInt("n")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PAGE", Message: "número de página inválido"})
	}
	if !h.uc.Store().SetPage(n) {
		return fail(c, fmt.Errorf("%w: página %d", domain.ErrPageRange, n))
	}
	return h.List(c)
}

// Workshops talleres cargados con su carga derivada.
func (h *CatalogHandler) Workshops(c *fiber.Ctx) error {
	snap := h.uc.Store().Snapshot()
	out := make([]dto.WorkshopResponse, 0, len(snap.Workshops))
	for _, w := range snap.Workshops {
		out = append(out, dto.WorkshopResponse{
			ID:             w.ID,
			Name:           w.Name,
			WorkerCount:    w.WorkerCount,
			ProcessingTime: w.ProcessingTime,
			Load:           snap.WorkshopLoad(w),
		})
	}
	return c.JSON(out)
}

// ProductTypes tipos de producto cargados.
func (h *CatalogHandler) ProductTypes(c *fiber.Ctx) error {
	types := h.uc.Store().Types()
	out := make([]dto.ProductTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, dto.ProductTypeResponse{ID: t.ID, Name: t.Name})
	}
	return c.JSON(out)
}

// Materials materiales cargados con el conteo de productos que los usan.
func (h *CatalogHandler) Materials(c *fiber.Ctx) error {
	snap := h.uc.Store().Snapshot()
	out := make([]dto.MaterialResponse, 0, len(snap.Materials))
	for _, m := range snap.Materials {
		out = append(out, dto.MaterialResponse{
			ID:             m.ID,
			Name:           m.Name,
			LossPercentage: m.LossPercentage,
			ProductCount:   snap.ProductsUsingMaterial(m.ID),
		})
	}
	return c.JSON(out)
}

// Dashboard resumen del catálogo: conteos, estadísticas, últimos productos y
// las tres distribuciones. Todo se calcula sobre la réplica en memoria.
func (h *CatalogHandler) Dashboard(c *fiber.Ctx) error {
	snap := h.uc.Store().Snapshot()
	sum := snap.Summary()

	recent := snap.Recent(5)
	recentOut := make([]dto.RecentProductResponse, 0, len(recent))
	for _, p := range recent {
		recentOut = append(recentOut, dto.RecentProductResponse{
			ID:              p.ID,
			Article:         p.Article,
			Name:            p.Name,
			MinPartnerPrice: p.MinPartnerPrice,
		})
	}

	return c.JSON(dto.DashboardResponse{
		TotalProducts:       sum.TotalProducts,
		TotalWorkshops:      sum.TotalWorkshops,
		TotalTypes:          sum.TotalTypes,
		TotalMaterials:      sum.TotalMaterials,
		AvgPrice:            sum.AvgPrice,
		MinPrice:            sum.MinPrice,
		MaxPrice:            sum.MaxPrice,
		AvgProductionTime:   sum.AvgProductionTime,
		TotalProductionTime: sum.TotalProductionTime,
		RecentProducts:      recentOut,
		ByType:              dto.FromBuckets(snap.DistributionByType()),
		ByMaterial:          dto.FromBuckets(snap.DistributionByMaterial()),
		ByPrice:             dto.FromBuckets(snap.DistributionByPrice()),
	})
}

// Refresh recarga las cuatro colecciones desde el backend.
func (h *CatalogHandler) Refresh(c *fiber.Ctx) error {
	if err := h.uc.Refresh(c.Context()); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Catálogo recargado"})
}

// Notifications notificaciones vigentes para el operador.
func (h *CatalogHandler) Notifications(c *fiber.Ctx) error {
	return c.JSON(h.sink.Active())
}
