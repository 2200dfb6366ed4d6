package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción.
const (
	TransactionTypeSale     = "SALE"     // venta: descuenta stock, requiere cliente
	TransactionTypePurchase = "PURCHASE" // compra: suma stock, requiere proveedor
)

// Estados de transacción.
const (
	TransactionStatusPending   = "PENDING"
	TransactionStatusCompleted = "COMPLETED"
	TransactionStatusCancelled = "CANCELLED"
)

// Transaction representa una venta o compra con sus ítems. Exactamente uno de
// ClientID/ProviderID está presente según el tipo. TotalAmount siempre es la
// suma de los subtotales de los ítems al momento de la última persistencia.
type Transaction struct {
	ID              string
	UserID          string // usuario principal dueño (tenant)
	CreatedByID     string // quien la creó (puede ser sub-usuario)
	Type            string // SALE | PURCHASE
	Status          string // PENDING | COMPLETED | CANCELLED
	ClientID        *string
	ProviderID      *string
	TransactionDate time.Time
	ReferenceNumber string
	Notes           string
	TotalAmount     decimal.Decimal
	Context         map[string]any
	Items           []*TransactionItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TransactionItem es una línea de la transacción. Vive y muere con su
// transacción; no se crea ni elimina de forma independiente.
type TransactionItem struct {
	ID            string
	TransactionID string
	ProductID     string
	Position      int // orden de la línea dentro de la transacción, desde 0
	Quantity      int // siempre positivo
	UnitPrice     decimal.Decimal
	Subtotal      decimal.Decimal // Quantity × UnitPrice
	Context       map[string]any

	// Proyección del producto para respuestas de detalle (se llena con JOIN).
	ProductName string
	ProductSKU  string
}
