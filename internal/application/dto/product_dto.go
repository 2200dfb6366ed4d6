package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de un producto. El stock inicial es opcional.
type CreateProductRequest struct {
	SKU           string          `json:"sku" validate:"required,min=1,max=100"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Description   string          `json:"description"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	InitialStock  int             `json:"initial_stock" validate:"min=0"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	Category      string          `json:"category"`
	Context       map[string]any  `json:"context"`
}

// UpdateProductRequest actualización parcial (el stock se muta solo vía
// transacciones o ajuste explícito).
type UpdateProductRequest struct {
	SKU           *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	UnitOfMeasure *string          `json:"unit_of_measure"`
	Category      *string          `json:"category"`
	Context       map[string]any   `json:"context"`
}

// StockAdjustmentRequest ajuste manual de stock con signo.
type StockAdjustmentRequest struct {
	Adjustment int    `json:"adjustment" validate:"required"`
	Reason     string `json:"reason"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	CurrentStock  int             `json:"current_stock"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	Category      string          `json:"category"`
	Active        bool            `json:"active"`
	Context       map[string]any  `json:"context,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductStockResponse nivel de stock puntual.
type ProductStockResponse struct {
	ProductID    string `json:"product_id"`
	CurrentStock int    `json:"current_stock"`
}

// StockLevelsResponse niveles de stock de varios productos de una vez.
// Los ids pedidos que no existen en el tenant simplemente no aparecen.
type StockLevelsResponse struct {
	Stocks map[string]int `json:"stocks"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
