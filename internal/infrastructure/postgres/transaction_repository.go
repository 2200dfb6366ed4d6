package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/huggingsoft/backoffice-api/internal/domain"
	"github.com/huggingsoft/backoffice-api/internal/domain/entity"
	"github.com/huggingsoft/backoffice-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const transactionColumns = `id, user_id, created_by_id, type, status, client_id, provider_id,
	transaction_date, reference_number, notes, total_amount, context, created_at, updated_at`

// TransactionRepo implementación del puerto TransactionRepository sobre PostgreSQL.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste la cabecera de la transacción.
func (r *TransactionRepo) Create(trx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		trx.ID, trx.UserID, trx.CreatedByID, trx.Type, trx.Status, trx.ClientID, trx.ProviderID,
		trx.TransactionDate, trx.ReferenceNumber, trx.Notes, trx.TotalAmount, trx.Context,
		trx.CreatedAt, trx.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la transacción.
func (r *TransactionRepo) CreateItem(item *entity.TransactionItem) error {
	query := `
		INSERT INTO transaction_items (id, transaction_id, product_id, position, quantity, unit_price, subtotal, context)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.TransactionID, item.ProductID, item.Position, item.Quantity, item.UnitPrice, item.Subtotal, item.Context,
	)
	if err != nil {
		return fmt.Errorf("insert transaction item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una transacción sin sus ítems.
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get transaction")
}

// GetDetailByID obtiene la transacción con sus ítems y la proyección del
// producto (nombre y SKU) en una consulta adicional con JOIN.
func (r *TransactionRepo) GetDetailByID(id string) (*entity.Transaction, error) {
	trx, err := r.GetByID(id)
	if err != nil || trx == nil {
		return trx, err
	}

	itemsQuery := `
		SELECT i.id, i.transaction_id, i.product_id, i.position, i.quantity, i.unit_price, i.subtotal, i.context,
			p.name, p.sku
		FROM transaction_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.transaction_id = $1
		ORDER BY i.position ASC`
	rows, err := r.q.Query(context.Background(), itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get transaction items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.TransactionItem
		if err := rows.Scan(
			&it.ID, &it.TransactionID, &it.ProductID, &it.Position, &it.Quantity, &it.UnitPrice, &it.Subtotal,
			&it.Context, &it.ProductName, &it.ProductSKU,
		); err != nil {
			return nil, fmt.Errorf("scan transaction item: %w", err)
		}
		trx.Items = append(trx.Items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return trx, nil
}

// Update persiste los campos mutables de la cabecera.
func (r *TransactionRepo) Update(trx *entity.Transaction) error {
	query := `
		UPDATE transactions SET status = $2, reference_number = $3, notes = $4,
			total_amount = $5, context = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		trx.ID, trx.Status, trx.ReferenceNumber, trx.Notes, trx.TotalAmount, trx.Context, trx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return nil
}

// List devuelve las cabeceras del tenant que cumplen el filtro, ordenadas
// por fecha descendente. Limit <= 0 lista sin paginar (informes).
func (r *TransactionRepo) List(filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`
	args := []any{filter.UserID}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if filter.ProviderID != "" {
		args = append(args, filter.ProviderID)
		query += fmt.Sprintf(" AND provider_id = $%d", len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += fmt.Sprintf(" AND transaction_date >= $%d", len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += fmt.Sprintf(" AND transaction_date <= $%d", len(args))
	}
	if filter.ReferenceNumber != "" {
		args = append(args, "%"+filter.ReferenceNumber+"%")
		query += fmt.Sprintf(" AND LOWER(reference_number) LIKE LOWER($%d)", len(args))
	}
	query += " ORDER BY transaction_date DESC, created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var trxs []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.CreatedByID, &t.Type, &t.Status, &t.ClientID, &t.ProviderID,
			&t.TransactionDate, &t.ReferenceNumber, &t.Notes, &t.TotalAmount, &t.Context,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		trxs = append(trxs, &t)
	}
	return trxs, rows.Err()
}

// CountByClient cuenta las transacciones asociadas a un cliente.
func (r *TransactionRepo) CountByClient(clientID string) (int64, error) {
	return r.count(`SELECT COUNT(*) FROM transactions WHERE client_id = $1`, clientID)
}

// CountByProvider cuenta las transacciones asociadas a un proveedor.
func (r *TransactionRepo) CountByProvider(providerID string) (int64, error) {
	return r.count(`SELECT COUNT(*) FROM transactions WHERE provider_id = $1`, providerID)
}

// CountItemsByProduct cuenta las líneas de transacción que referencian un
// producto.
func (r *TransactionRepo) CountItemsByProduct(productID string) (int64, error) {
	return r.count(`SELECT COUNT(*) FROM transaction_items WHERE product_id = $1`, productID)
}

func (r *TransactionRepo) count(query, arg string) (int64, error) {
	var n int64
	if err := r.q.QueryRow(context.Background(), query, arg).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

func (r *TransactionRepo) scanOne(row pgx.Row, op string) (*entity.Transaction, error) {
	var t entity.Transaction
	err := row.Scan(
		&t.ID, &t.UserID, &t.CreatedByID, &t.Type, &t.Status, &t.ClientID, &t.ProviderID,
		&t.TransactionDate, &t.ReferenceNumber, &t.Notes, &t.TotalAmount, &t.Context,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &t, nil
}
