package transaction

import (
	"context"

	"github.com/huggingsoft/backoffice-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de base de datos, con los
// repositorios atados a esa transacción. Si fn devuelve error se hace
// rollback; si no, commit. Es la frontera de atomicidad de las operaciones
// que mutan stock.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		productRepo repository.ProductRepository,
	) error) error
}
