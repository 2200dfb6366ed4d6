package repository

import "github.com/huggingsoft/backoffice-api/internal/domain/entity"

// ProductFilter filtro AND para listados e informes de inventario.
// Search busca (case-insensitive) en nombre y SKU. MinStock/MaxStock
// acotan CurrentStock (inclusive). Limit <= 0 significa sin límite.
type ProductFilter struct {
	UserID   string // tenant dueño, obligatorio
	Category string
	Active   *bool
	Search   string
	MinStock *int
	MaxStock *int
	Limit    int
	Offset   int
}

// ProductRepository puerto de persistencia para productos.
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) y solo tiene sentido
// dentro de una transacción de BD; UpdateStock es la única escritura de
// CurrentStock.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	GetByUserAndSKU(userID, sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(id string, stock int) error
	Delete(id string) error
	List(filter ProductFilter) ([]*entity.Product, error)
	GetStockByIDs(userID string, ids []string) (map[string]int, error)
}
