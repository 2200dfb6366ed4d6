package dto

import "time"

// CreateProviderRequest alta de un proveedor.
type CreateProviderRequest struct {
	Name    string         `json:"name" validate:"required,min=1,max=200"`
	NIT     string         `json:"nit"`
	Email   string         `json:"email" validate:"omitempty,email"`
	Phone   string         `json:"phone"`
	Address string         `json:"address"`
	Context map[string]any `json:"context"`
}

// UpdateProviderRequest actualización parcial de un proveedor.
type UpdateProviderRequest struct {
	Name    *string        `json:"name" validate:"omitempty,min=1,max=200"`
	NIT     *string        `json:"nit"`
	Email   *string        `json:"email" validate:"omitempty,email"`
	Phone   *string        `json:"phone"`
	Address *string        `json:"address"`
	Context map[string]any `json:"context"`
}

// ProviderResponse salida de un proveedor.
type ProviderResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	NIT       string         `json:"nit"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Address   string         `json:"address"`
	Active    bool           `json:"active"`
	Context   map[string]any `json:"context,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ProviderSummaryResponse proyección mínima para el detalle de transacción.
type ProviderSummaryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	NIT  string `json:"nit,omitempty"`
}

// ProviderListResponse lista paginada de proveedores.
type ProviderListResponse struct {
	Items []ProviderResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
