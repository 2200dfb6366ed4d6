package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransactionItemRequest línea de una transacción nueva.
type CreateTransactionItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Context   map[string]any  `json:"context"`
}

// CreateTransactionRequest alta de venta o compra. ClientID aplica solo a
// ventas y ProviderID solo a compras; la fecha por defecto es ahora.
type CreateTransactionRequest struct {
	ClientID        *string                        `json:"client_id"`
	ProviderID      *string                        `json:"provider_id"`
	TransactionDate *time.Time                     `json:"transaction_date"`
	ReferenceNumber string                         `json:"reference_number"`
	Notes           string                         `json:"notes"`
	Status          string                         `json:"status"`
	Context         map[string]any                 `json:"context"`
	Items           []CreateTransactionItemRequest `json:"items"`
}

// UpdateTransactionRequest actualización acotada: nunca ítems, contrapartes
// ni totales (para eso están la cancelación y los ajustes).
type UpdateTransactionRequest struct {
	Status          *string        `json:"status"`
	Notes           *string        `json:"notes"`
	ReferenceNumber *string        `json:"reference_number"`
	Context         map[string]any `json:"context"`
}

// TransactionItemResponse línea en el detalle.
type TransactionItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Context     map[string]any  `json:"context,omitempty"`
}

// TransactionDetailResponse detalle completo: ítems, contraparte y creador
// resueltos (carga ansiosa, sin idas y vueltas adicionales).
type TransactionDetailResponse struct {
	ID              string                    `json:"id"`
	Type            string                    `json:"type"`
	Status          string                    `json:"status"`
	TransactionDate time.Time                 `json:"transaction_date"`
	ReferenceNumber string                    `json:"reference_number"`
	Notes           string                    `json:"notes"`
	TotalAmount     decimal.Decimal           `json:"total_amount"`
	Client          *ClientSummaryResponse    `json:"client,omitempty"`
	Provider        *ProviderSummaryResponse  `json:"provider,omitempty"`
	CreatedBy       *UserSummaryResponse      `json:"created_by,omitempty"`
	Context         map[string]any            `json:"context,omitempty"`
	Items           []TransactionItemResponse `json:"items"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

// TransactionSummaryResponse fila de listado.
type TransactionSummaryResponse struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	Status          string          `json:"status"`
	TransactionDate time.Time       `json:"transaction_date"`
	ReferenceNumber string          `json:"reference_number"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	ClientID        *string         `json:"client_id,omitempty"`
	ProviderID      *string         `json:"provider_id,omitempty"`
}

// ListTransactionsRequest filtros del listado; todos opcionales y en AND.
type ListTransactionsRequest struct {
	Type            string     `query:"type"`
	Status          string     `query:"status"`
	ClientID        string     `query:"client_id"`
	ProviderID      string     `query:"provider_id"`
	DateFrom        *time.Time `query:"date_from"`
	DateTo          *time.Time `query:"date_to"`
	ReferenceNumber string     `query:"reference_number"`
	PageRequest
}

// TransactionListResponse lista paginada de transacciones.
type TransactionListResponse struct {
	Items []TransactionSummaryResponse `json:"items"`
	Page  PageResponse                 `json:"page"`
}
