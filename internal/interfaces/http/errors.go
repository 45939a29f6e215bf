package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Muebleria-admin/internal/application/dto"
	"github.com/jhoicas/Muebleria-admin/internal/domain"
)

// fail mapea los errores de dominio al estado HTTP y al cuerpo de error común.
// Un rechazo del backend remoto se reporta como 502: el problema no es de este
// servicio ni del operador.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	code := "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrValidation):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrEmptySet):
		status, code = fiber.StatusBadRequest, "EMPTY_SELECTION"
	case errors.Is(err, domain.ErrPageRange):
		status, code = fiber.StatusBadRequest, "PAGE_RANGE"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrBackend):
		status, code = fiber.StatusBadGateway, "BACKEND"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
