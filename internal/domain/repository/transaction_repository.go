package repository

import (
	"time"

	"github.com/huggingsoft/backoffice-api/internal/domain/entity"
)

// TransactionFilter filtro componible para el listado de transacciones.
// Todos los campos presentes se combinan con AND, siempre acotado al tenant.
// ReferenceNumber es subcadena case-insensitive; las fechas son inclusivas.
// Limit <= 0 significa sin límite (para informes).
type TransactionFilter struct {
	UserID          string // tenant dueño, obligatorio
	Type            string
	Status          string
	ClientID        string
	ProviderID      string
	DateFrom        *time.Time
	DateTo          *time.Time
	ReferenceNumber string
	Limit           int
	Offset          int
}

// TransactionRepository puerto de persistencia para transacciones y sus ítems.
// GetDetailByID carga los ítems con la proyección del producto en una sola
// consulta adicional (plan de carga explícito, sin lazy fetch).
type TransactionRepository interface {
	Create(tx *entity.Transaction) error
	CreateItem(item *entity.TransactionItem) error
	GetByID(id string) (*entity.Transaction, error)
	GetDetailByID(id string) (*entity.Transaction, error)
	Update(tx *entity.Transaction) error
	List(filter TransactionFilter) ([]*entity.Transaction, error)
	CountByClient(clientID string) (int64, error)
	CountByProvider(providerID string) (int64, error)
	CountItemsByProduct(productID string) (int64, error)
}
