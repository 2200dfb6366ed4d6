package entity

import "time"

// Provider representa un proveedor (contraparte de compras) de un tenant.
// No se puede eliminar mientras tenga transacciones; se desactiva.
type Provider struct {
	ID        string
	UserID    string // usuario principal dueño
	Name      string
	NIT       string
	Email     string
	Phone     string
	Address   string
	Active    bool
	Context   map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}
