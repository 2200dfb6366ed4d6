package entity

import "time"

// User representa una cuenta del sistema. Si ParentUserID es nil es un
// usuario principal (tenant, dueño de clientes, proveedores, productos y
// transacciones); si no, es un sub-usuario que opera sobre los datos del
// padre. Un sub-usuario nunca puede ser padre de otro (sin anidamiento).
type User struct {
	ID           string
	Username     string // único, case-insensitive
	Email        string // único, case-insensitive
	PasswordHash string // bcrypt, nunca en claro después de persistir
	Active       bool
	ParentUserID *string

	// Metadatos de empresa (solo relevantes en el usuario principal).
	CompanyName    string
	CompanyNIT     string
	CompanyAddress string
	CompanyPhone   string

	Context   map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsMain indica si la cuenta es un usuario principal (tenant).
func (u *User) IsMain() bool { return u.ParentUserID == nil }
