package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrInvalidStock  = errors.New("el stock debe ser un entero no negativo")
	ErrDuplicate     = errors.New("recurso duplicado")
	ErrConflict      = errors.New("conflicto con el estado actual")
	// ErrNotConfigured: la operación depende de un componente que no se configuró al arrancar.
	ErrNotConfigured = errors.New("funcionalidad no configurada")
)
