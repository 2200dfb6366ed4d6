// Package inventory contiene la lógica de dominio del libro de stock:
// cómo se computan y validan los deltas sobre Product.CurrentStock.
package inventory

import (
	"github.com/huggingsoft/backoffice-api/internal/domain"
	"github.com/huggingsoft/backoffice-api/internal/domain/entity"
)

// Direction indica el sentido de un delta de stock.
type Direction string

const (
	DirectionIncrease Direction = "increase" // compra: suma sin tope
	DirectionDecrease Direction = "decrease" // venta: no puede dejar stock negativo
)

// Apply calcula el nuevo stock para (producto, cantidad, dirección).
// Para Decrease falla con InsufficientStockError si el resultado sería
// negativo; para Increase acepta cualquier cantidad. No muta el producto:
// el caller decide cuándo asignar el resultado dentro de su transacción.
func Apply(product *entity.Product, quantity int, dir Direction) (int, error) {
	if quantity <= 0 {
		return 0, domain.ErrInvalidInput
	}
	switch dir {
	case DirectionDecrease:
		newStock := product.CurrentStock - quantity
		if newStock < 0 {
			return 0, &domain.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   quantity,
				Available:   product.CurrentStock,
			}
		}
		return newStock, nil
	case DirectionIncrease:
		return product.CurrentStock + quantity, nil
	}
	return 0, domain.ErrInvalidInput
}

// Revert calcula el stock al deshacer un delta ya aplicado. Revertir una
// venta devuelve la cantidad; revertir una compra la resta y puede dejar el
// stock negativo: la invariante de no-negatividad protege ventas futuras,
// no el deshacer de una compra registrada.
func Revert(product *entity.Product, quantity int, original Direction) int {
	if original == DirectionDecrease {
		return product.CurrentStock + quantity
	}
	return product.CurrentStock - quantity
}

// Adjust calcula el stock tras un ajuste manual con signo. Los ajustes
// negativos usan la misma invariante de no-negatividad que las ventas.
func Adjust(product *entity.Product, delta int) (int, error) {
	if delta == 0 {
		return 0, domain.ErrInvalidInput
	}
	if delta < 0 {
		return Apply(product, -delta, DirectionDecrease)
	}
	return Apply(product, delta, DirectionIncrease)
}
