package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). El handler HTTP los mapea
// a una categoría de respuesta fija por miembro de la taxonomía.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrBusinessRule      = errors.New("violación de regla de negocio")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// InsufficientStockError detalla una venta rechazada por falta de stock:
// qué producto, cuánto se pidió y cuánto hay disponible.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el producto %s (%s): solicitado %d, disponible %d",
		e.ProductName, e.ProductID, e.Requested, e.Available)
}

// Is permite detectarlo con errors.Is como ErrInsufficientStock y también
// como ErrBusinessRule (es una violación de regla de negocio).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock || target == ErrBusinessRule
}
