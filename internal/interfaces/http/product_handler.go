package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Muebleria-admin/internal/application/dto"
	"github.com/jhoicas/Muebleria-admin/internal/application/usecase"
)

// ProductHandler maneja las mutaciones del catálogo contra el backend.
type ProductHandler struct {
	uc *usecase.CatalogUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.CatalogUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create alta de producto con su ruta de talleres.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.uc.Create(c.Context(), in.ToDraft())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// Update reemplazo completo de un producto y su ruta de talleres.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.ProductDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.uc.Update(c.Context(), int64(id), in.ToDraft())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product)
}

// Delete borrado optimista de un producto.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	if err := h.uc.Delete(c.Context(), int64(id)); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Producto eliminado correctamente"})
}

// DeleteSelected elimina todos los productos seleccionados en una llamada.
func (h *ProductHandler) DeleteSelected(c *fiber.Ctx) error {
	deleted, err := h.uc.DeleteSelected(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}

// ReplaceWorkshops reemplaza la ruta de producción de un producto.
func (h *ProductHandler) ReplaceWorkshops(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in struct {
		WorkshopIDs []int64 `json:"workshop_ids"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.ReplaceWorkshops(c.Context(), int64(id), in.WorkshopIDs); err != nil {
		return fail(c, err)
	}
	if err := h.uc.Refresh(c.Context()); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Ruta de talleres actualizada"})
}

// CalculateMaterials calcula la materia prima necesaria vía backend.
func (h *ProductHandler) CalculateMaterials(c *fiber.Ctx) error {
	var in dto.CalculationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	needed, err := h.uc.CalculateMaterials(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.CalculationResponse{RawMaterialNeeded: needed})
}
