package repository

import "github.com/huggingsoft/backoffice-api/internal/domain/entity"

// CounterpartyFilter filtro AND para listados de clientes y proveedores.
// Search busca (case-insensitive) en nombre, NIT y email.
type CounterpartyFilter struct {
	UserID string // tenant dueño, obligatorio
	Active *bool
	Search string
	Limit  int
	Offset int
}

// ClientRepository puerto de persistencia para clientes.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	Update(client *entity.Client) error
	Delete(id string) error
	List(filter CounterpartyFilter) ([]*entity.Client, error)
}
