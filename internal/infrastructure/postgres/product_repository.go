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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, user_id, sku, name, description, purchase_price, sale_price,
	current_stock, unit_of_measure, category, active, context, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto nuevo.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.UserID, product.SKU, product.Name, product.Description,
		product.PurchasePrice, product.SalePrice, product.CurrentStock, product.UnitOfMeasure,
		product.Category, product.Active, product.Context, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetForUpdate obtiene un producto bloqueando su fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción de BD.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product for update")
}

// GetByUserAndSKU obtiene un producto por tenant y SKU (case-insensitive).
func (r *ProductRepo) GetByUserAndSKU(userID, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 AND LOWER(sku) = LOWER($2)`
	return r.scanOne(r.q.QueryRow(context.Background(), query, userID, sku), "get product by sku")
}

// Update persiste los campos descriptivos y de precio; nunca el stock.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET sku = $2, name = $3, description = $4, purchase_price = $5,
			sale_price = $6, unit_of_measure = $7, category = $8, active = $9,
			context = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.Description, product.PurchasePrice,
		product.SalePrice, product.UnitOfMeasure, product.Category, product.Active,
		product.Context, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock escribe el nuevo nivel de stock. Es la única escritura de
// current_stock; el valor lo computa el dominio bajo bloqueo de fila.
func (r *ProductRepo) UpdateStock(id string, stock int) error {
	query := `UPDATE products SET current_stock = $2, updated_at = NOW() WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id, stock); err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// List devuelve los productos del tenant que cumplen el filtro, ordenados
// por nombre.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1`
	args := []any{filter.UserID}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		query += fmt.Sprintf(" AND active = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (%s LIKE $%d OR %s LIKE $%d)", foldAccents("name"), n, foldAccents("sku"), n)
	}
	if filter.MinStock != nil {
		args = append(args, *filter.MinStock)
		query += fmt.Sprintf(" AND current_stock >= $%d", len(args))
	}
	if filter.MaxStock != nil {
		args = append(args, *filter.MaxStock)
		query += fmt.Sprintf(" AND current_stock <= $%d", len(args))
	}
	query += " ORDER BY name ASC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.SKU, &p.Name, &p.Description, &p.PurchasePrice, &p.SalePrice,
			&p.CurrentStock, &p.UnitOfMeasure, &p.Category, &p.Active, &p.Context,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

// GetStockByIDs devuelve el stock actual de varios productos del tenant en
// una sola consulta.
func (r *ProductRepo) GetStockByIDs(userID string, ids []string) (map[string]int, error) {
	query := `SELECT id, current_stock FROM products WHERE user_id = $1 AND id = ANY($2)`
	rows, err := r.q.Query(context.Background(), query, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("get stock by ids: %w", err)
	}
	defer rows.Close()

	stocks := make(map[string]int, len(ids))
	for rows.Next() {
		var id string
		var stock int
		if err := rows.Scan(&id, &stock); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		stocks[id] = stock
	}
	return stocks, rows.Err()
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.UserID, &p.SKU, &p.Name, &p.Description, &p.PurchasePrice, &p.SalePrice,
		&p.CurrentStock, &p.UnitOfMeasure, &p.Category, &p.Active, &p.Context,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}
