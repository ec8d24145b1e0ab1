package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// InsufficientStockError detalla una salida o traslado rechazado.
// errors.Is(err, ErrInsufficientStock) es verdadero; Available permite al llamador
// ofrecer "tope al disponible" y reintentar.
type InsufficientStockError struct {
	ProductCode string
	WarehouseID string
	Requested   int64
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: producto %s en bodega %s (solicitado %d, disponible %d)",
		ErrInsufficientStock, e.ProductCode, e.WarehouseID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// Invalid envuelve ErrInvalidInput con el detalle del campo.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NotFound envuelve ErrNotFound con el tipo de recurso y su clave.
func NotFound(resource, key string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, resource, key)
}

// Conflict envuelve ErrConflict con el detalle del estado.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// IsNotFound atajo para errors.Is(err, ErrNotFound).
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// Duplicate envuelve ErrDuplicate con el valor en conflicto.
func Duplicate(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDuplicate, fmt.Sprintf(format, args...))
}
