package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El mapeo a códigos HTTP vive en internal/interfaces/http.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrInvalidState = errors.New("transición de estado no permitida")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrForbidden    = errors.New("acceso denegado")
)
