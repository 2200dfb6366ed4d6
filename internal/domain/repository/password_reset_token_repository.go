package repository

import (
	"time"

	"github.com/huggingsoft/backoffice-api/internal/domain/entity"
)

// PasswordResetTokenRepository puerto de persistencia para tokens de
// recuperación de contraseña.
type PasswordResetTokenRepository interface {
	Create(token *entity.PasswordResetToken) error
	GetByToken(token string) (*entity.PasswordResetToken, error)
	DeleteByUser(userID string) error
	Delete(token string) error
	DeleteExpired(before time.Time) error
}
