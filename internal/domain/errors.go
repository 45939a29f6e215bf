package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound   = errors.New("recurso no encontrado")
	ErrValidation = errors.New("entrada inválida")
	ErrBackend    = errors.New("el backend rechazó la operación")
	ErrPageRange  = errors.New("página fuera de rango")
	ErrEmptySet   = errors.New("no hay elementos seleccionados")
)
