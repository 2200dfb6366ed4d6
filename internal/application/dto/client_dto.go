package dto

import "time"

// CreateClientRequest alta de un cliente.
type CreateClientRequest struct {
	Name    string         `json:"name" validate:"required,min=1,max=200"`
	NIT     string         `json:"nit"`
	Email   string         `json:"email" validate:"omitempty,email"`
	Phone   string         `json:"phone"`
	Address string         `json:"address"`
	Context map[string]any `json:"context"`
}

// UpdateClientRequest actualización parcial de un cliente.
type UpdateClientRequest struct {
	Name    *string        `json:"name" validate:"omitempty,min=1,max=200"`
	NIT     *string        `json:"nit"`
	Email   *string        `json:"email" validate:"omitempty,email"`
	Phone   *string        `json:"phone"`
	Address *string        `json:"address"`
	Context map[string]any `json:"context"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
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

// ClientSummaryResponse proyección mínima para el detalle de transacción.
type ClientSummaryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	NIT  string `json:"nit,omitempty"`
}

// ClientListResponse lista paginada de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
