package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Muebleria-admin/internal/application/catalog"
	"github.com/jhoicas/Muebleria-admin/internal/application/dto"
	"github.com/jhoicas/Muebleria-admin/internal/domain"
)

// SelectionHandler maneja la selección para acciones masivas. El estado vive
// en el store; estos endpoints solo lo mutan y lo devuelven.
type SelectionHandler struct {
	store *catalog.Store
}

// NewSelectionHandler construye el handler.
func NewSelectionHandler(store *catalog.Store) *SelectionHandler {
	return &SelectionHandler{store: store}
}

func (h *SelectionHandler) state() dto.SelectionResponse {
	ids := h.store.SelectedIDs()
	return dto.SelectionResponse{IDs: ids, Count: len(ids)}
}

// Get estado actual de la selección.
func (h *SelectionHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.state())
}

// Toggle invierte la marca de un producto.
func (h *SelectionHandler) Toggle(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	if _, ok := h.store.ToggleSelection(int64(id)); !ok {
		return fail(c, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id))
	}
	return c.JSON(h.state())
}

// TogglePage selecciona o deselecciona todas las filas de la página actual.
func (h *SelectionHandler) TogglePage(c *fiber.Ctx) error {
	h.store.SelectAllOnPage()
	return c.JSON(h.state())
}

// Clear vacía la selección (al abandonar la vista de listado).
func (h *SelectionHandler) Clear(c *fiber.Ctx) error {
	h.store.ClearSelection()
	return c.JSON(h.state())
}
