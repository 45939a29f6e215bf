package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Muebleria-admin/internal/application/catalog"
	"github.com/jhoicas/Muebleria-admin/internal/application/dto"
	"github.com/jhoicas/Muebleria-admin/internal/application/reports"
	"github.com/jhoicas/Muebleria-admin/internal/application/usecase"
	"github.com/jhoicas/Muebleria-admin/internal/domain"
)

const csvContentType = "text/csv; charset=utf-8"

// PDFGenerator genera la versión imprimible del catálogo.
type PDFGenerator interface {
	Generate(snap catalog.Snapshot) ([]byte, error)
}

// ReportHandler expone los informes, el respaldo y la importación de datos.
// Los informes se generan sobre la réplica en memoria, sin consultar al backend.
type ReportHandler struct {
	uc  *usecase.CatalogUseCase
	pdf PDFGenerator
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.CatalogUseCase, pdf PDFGenerator) *ReportHandler {
	return &ReportHandler{uc: uc, pdf: pdf}
}

// Get genera la variante pedida: products, workshops, materials, full o
// statistics. Con ?filtered=true la variante de productos exporta el conjunto
// filtrado del listado en lugar del catálogo completo.
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	kind := c.Params("kind")
	store := h.uc.Store()

	snap := store.Snapshot()
	if kind == "products" && c.QueryBool("filtered") {
		snap = catalog.NewSnapshot(store.FilteredProducts(), store.Workshops(), store.Types(), store.Materials())
	}
	gen := reports.NewGenerator(snap)

	var doc string
	switch kind {
	case "products":
		doc = gen.Products()
	case "workshops":
		doc = gen.Workshops()
	case "materials":
		doc = gen.Materials()
	case "full":
		doc = gen.Full()
	case "statistics":
		doc = gen.Statistics()
	default:
		return fail(c, fmt.Errorf("%w: informe %q", domain.ErrNotFound, kind))
	}
	return h.sendCSV(c, kind, doc)
}

// Custom informe personalizado filtrado por tipo, material y rango de fechas
// de creación (query: type_id, material_id, date_from, date_to en YYYY-MM-DD).
func (h *ReportHandler) Custom(c *fiber.Ctx) error {
	params := reports.CustomParams{
		TypeID:     int64(c.QueryInt("type_id")),
		MaterialID: int64(c.QueryInt("material_id")),
	}
	var err error
	if params.From, err = parseDateQuery(c.Query("date_from")); err != nil {
		return fail(c, err)
	}
	if params.To, err = parseDateQuery(c.Query("date_to")); err != nil {
		return fail(c, err)
	}

	gen := reports.NewGenerator(h.uc.Store().Snapshot())
	return h.sendCSV(c, "custom", gen.Custom(params))
}

func parseDateQuery(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha %q (se espera YYYY-MM-DD)", domain.ErrValidation, raw)
	}
	return &t, nil
}

func (h *ReportHandler) sendCSV(c *fiber.Ctx, kind, doc string) error {
	body, err := reports.WithBOM(doc)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, csvContentType)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", reports.Filename(kind, time.Now())))
	return c.Send(body)
}

// CatalogPDF versión imprimible del catálogo completo.
func (h *ReportHandler) CatalogPDF(c *fiber.Ctx) error {
	body, err := h.pdf.Generate(h.uc.Store().Snapshot())
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", "catalog_report_"+time.Now().Format("2006-01-02")+".pdf"))
	return c.Send(body)
}

// Backup descarga la copia de seguridad del backend.
func (h *ReportHandler) Backup(c *fiber.Ctx) error {
	data, name, err := h.uc.Backup(c.Context())
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/octet-stream")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(data)
}

// Import sube un archivo de datos al backend y recarga el catálogo.
func (h *ReportHandler) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "archivo requerido en el campo file"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	defer file.Close()

	if err := h.uc.Import(c.Context(), fileHeader.Filename, file); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Datos importados correctamente"})
}
