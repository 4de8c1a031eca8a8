package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrUserNotFound   = errors.New("usuario no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrDuplicate      = errors.New("recurso duplicado")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrForbidden      = errors.New("acceso denegado")
	ErrConflict       = errors.New("conflicto con el estado actual")
	ErrAllSlotsFilled = errors.New("todas las posiciones reservadas del plan están ocupadas")

	// ErrSlotConflict indica una doble escritura de secuencia. Es un error de
	// integridad fatal: la sesión de secuenciado debe detenerse para revisión
	// manual, nunca recuperarse en silencio.
	ErrSlotConflict = errors.New("conflicto de secuencia: la posición ya está ocupada")
)
