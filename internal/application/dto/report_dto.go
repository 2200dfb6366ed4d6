package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesReportRequest parámetros del informe de ventas.
type SalesReportRequest struct {
	DateFrom time.Time `query:"date_from"`
	DateTo   time.Time `query:"date_to"`
	GroupBy  string    `query:"group_by"` // "" (total) | "client"
}

// SalesByClientRow fila del informe agrupado por cliente.
type SalesByClientRow struct {
	Client ClientSummaryResponse `json:"client"`
	Total  decimal.Decimal       `json:"total"`
	Count  int                   `json:"count"`
}

// SalesReportResponse informe de ventas del período.
type SalesReportResponse struct {
	DateFrom   time.Time          `json:"date_from"`
	DateTo     time.Time          `json:"date_to"`
	TotalSales decimal.Decimal    `json:"total_sales"`
	Count      int                `json:"count"`
	ByClient   []SalesByClientRow `json:"by_client,omitempty"`
}

// InventoryReportRequest parámetros del informe de inventario.
type InventoryReportRequest struct {
	Category string `query:"category"`
	MinStock *int   `query:"min_stock"`
	MaxStock *int   `query:"max_stock"`
}
