package inventory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huggingsoft/backoffice-api/internal/domain"
	"github.com/huggingsoft/backoffice-api/internal/domain/entity"
	"github.com/huggingsoft/backoffice-api/internal/domain/inventory"
)

func productWithStock(stock int) *entity.Product {
	return &entity.Product{ID: "p1", Name: "Tornillo 3/8", CurrentStock: stock}
}

func TestApply_VentaDescuentaStock(t *testing.T) {
	got, err := inventory.Apply(productWithStock(10), 4, inventory.DirectionDecrease)
	require.NoError(t, err)
	assert.Equal(t, 6, got)
}

func TestApply_VentaExactaDejaCero(t *testing.T) {
	got, err := inventory.Apply(productWithStock(5), 5, inventory.DirectionDecrease)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestApply_VentaSinStockFalla(t *testing.T) {
	_, err := inventory.Apply(productWithStock(3), 4, inventory.DirectionDecrease)
	require.Error(t, err)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr), "debe ser InsufficientStockError")
	assert.Equal(t, 4, stockErr.Requested)
	assert.Equal(t, 3, stockErr.Available)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.ErrorIs(t, err, domain.ErrBusinessRule, "el stock insuficiente es una regla de negocio")
}

func TestApply_CompraSumaSinTope(t *testing.T) {
	got, err := inventory.Apply(productWithStock(0), 1000, inventory.DirectionIncrease)
	require.NoError(t, err)
	assert.Equal(t, 1000, got)
}

func TestApply_CantidadNoPositivaFalla(t *testing.T) {
	for _, qty := range []int{0, -3} {
		_, err := inventory.Apply(productWithStock(10), qty, inventory.DirectionDecrease)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestRevert_VentaDevuelveStock(t *testing.T) {
	got := inventory.Revert(productWithStock(6), 4, inventory.DirectionDecrease)
	assert.Equal(t, 10, got)
}

func TestRevert_CompraPuedeDejarNegativo(t *testing.T) {
	// El stock de la compra ya se vendió; revertirla deja el faltante visible.
	got := inventory.Revert(productWithStock(2), 5, inventory.DirectionIncrease)
	assert.Equal(t, -3, got)
}

func TestAdjust_PositivoYNegativo(t *testing.T) {
	got, err := inventory.Adjust(productWithStock(10), 5)
	require.NoError(t, err)
	assert.Equal(t, 15, got)

	got, err = inventory.Adjust(productWithStock(10), -10)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestAdjust_NegativoBajoCeroFalla(t *testing.T) {
	_, err := inventory.Adjust(productWithStock(10), -11)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestAdjust_CeroFalla(t *testing.T) {
	_, err := inventory.Adjust(productWithStock(10), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
