package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario de un tenant.
// CurrentStock solo se muta por el motor de transacciones y por ajustes
// manuales, ambos con la misma invariante de no-negatividad en descuentos.
type Product struct {
	ID            string
	UserID        string // usuario principal dueño
	SKU           string // único por tenant, case-insensitive
	Name          string
	Description   string
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	CurrentStock  int
	UnitOfMeasure string
	Category      string
	Active        bool
	Context       map[string]any
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
