package entity

import "time"

// PasswordResetToken credencial efímera de recuperación de contraseña.
// Se crea al solicitar el reset (invalidando tokens previos del usuario),
// se consume al confirmar y caduca en ExpiresAt.
type PasswordResetToken struct {
	Token     string // opaco, único
	UserID    string
	ExpiresAt time.Time
}

// Expired indica si el token ya caducó.
func (t *PasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
