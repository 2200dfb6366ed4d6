package repository

import "github.com/huggingsoft/backoffice-api/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios (principales y sub-usuarios).
// Las búsquedas por username/email son case-insensitive.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	ExistsByUsername(username string) (bool, error)
	ExistsByEmail(email string) (bool, error)
	Update(user *entity.User) error
	Delete(id string) error
	ListSubUsers(parentID string, active *bool, limit, offset int) ([]*entity.User, error)
}
