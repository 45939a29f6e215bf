package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Muebleria-admin/internal/application/notify"
	"github.com/jhoicas/Muebleria-admin/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC *usecase.CatalogUseCase
	Sink      *notify.Sink
	PDF       PDFGenerator
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	catalogHandler := NewCatalogHandler(deps.CatalogUC, deps.Sink)
	productHandler := NewProductHandler(deps.CatalogUC)
	selectionHandler := NewSelectionHandler(deps.CatalogUC.Store())
	reportHandler := NewReportHandler(deps.CatalogUC, deps.PDF)

	// Productos. Las rutas literales van antes que /:id (Fiber resuelve en
	// orden de registro).
	products := api.Group("/products")
	products.Get("/all", catalogHandler.ListAll)
	products.Delete("/selected", productHandler.DeleteSelected)
	products.Get("/", catalogHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", catalogHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Put("/:id/workshops", productHandler.ReplaceWorkshops)

	// Vista: filtros y paginación
	api.Post("/filters", catalogHandler.ApplyFilters)
	api.Post("/filters/reset", catalogHandler.ResetFilters)
	api.Post("/page/:n", catalogHandler.SetPage)

	// Selección para acciones masivas
	selection := api.Group("/selection")
	selection.Get("/", selectionHandler.Get)
	selection.Post("/toggle/:id", selectionHandler.Toggle)
	selection.Post("/page", selectionHandler.TogglePage)
	selection.Post("/clear", selectionHandler.Clear)

	// Catálogos de referencia
	api.Get("/workshops", catalogHandler.Workshops)
	api.Get("/product-types", catalogHandler.ProductTypes)
	api.Get("/materials", catalogHandler.Materials)

	// Dashboard, recarga y notificaciones
	api.Get("/dashboard", catalogHandler.Dashboard)
	api.Post("/refresh", catalogHandler.Refresh)
	api.Get("/notifications", catalogHandler.Notifications)

	// Informes, respaldo e importación
	reportsGroup := api.Group("/reports")
	reportsGroup.Get("/custom", reportHandler.Custom)
	reportsGroup.Get("/catalog.pdf", reportHandler.CatalogPDF)
	reportsGroup.Get("/:kind", reportHandler.Get)

	api.Get("/backup", reportHandler.Backup)
	api.Post("/import", reportHandler.Import)

	// Calculadora de materia prima
	api.Post("/calculate-materials", productHandler.CalculateMaterials)
}
