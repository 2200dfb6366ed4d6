package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/huggingsoft/backoffice-api/internal/application/dto"
	"github.com/huggingsoft/backoffice-api/internal/application/tenant"
	"github.com/huggingsoft/backoffice-api/internal/application/transaction"
	"github.com/huggingsoft/backoffice-api/internal/domain"
	"github.com/huggingsoft/backoffice-api/internal/domain/entity"
	"github.com/huggingsoft/backoffice-api/internal/domain/inventory"
	"github.com/huggingsoft/backoffice-api/internal/domain/repository"
	"github.com/huggingsoft/backoffice-api/pkg/logger"
	"github.com/huggingsoft/backoffice-api/pkg/textutil"
)

// ProductUseCase CRUD de productos y ajuste manual de stock. El ajuste
// corre bajo el mismo TxRunner que las transacciones para compartir la
// disciplina de bloqueo de fila.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
	runner      transaction.TxRunner
	log         *logger.Logger
	now         func() time.Time
}

// NewProductUseCase construye el caso de uso de productos.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
	runner transaction.TxRunner,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, txRepo: txRepo, runner: runner, log: log, now: time.Now}
}

// Create da de alta un producto. El SKU es único por tenant sin distinguir
// mayúsculas; el stock inicial no puede ser negativo.
func (uc *ProductUseCase) Create(tc *tenant.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := strings.TrimSpace(req.SKU)
	name := strings.TrimSpace(req.Name)
	if sku == "" || name == "" {
		return nil, fmt.Errorf("%w: SKU y nombre son obligatorios", domain.ErrInvalidInput)
	}
	if req.InitialStock < 0 {
		return nil, fmt.Errorf("%w: el stock inicial no puede ser negativo", domain.ErrInvalidInput)
	}
	if req.PurchasePrice.IsNegative() || req.SalePrice.IsNegative() {
		return nil, fmt.Errorf("%w: los precios no pueden ser negativos", domain.ErrInvalidInput)
	}

	if existing, err := uc.productRepo.GetByUserAndSKU(tc.TenantID, sku); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("%w: ya existe un producto con ese SKU", domain.ErrConflict)
	}

	now := uc.now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		UserID:        tc.TenantID,
		SKU:           sku,
		Name:          name,
		Description:   req.Description,
		PurchasePrice: req.PurchasePrice,
		SalePrice:     req.SalePrice,
		CurrentStock:  req.InitialStock,
		UnitOfMeasure: req.UnitOfMeasure,
		Category:      req.Category,
		Active:        true,
		Context:       req.Context,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Str("sku", product.SKU).Str("tenant_id", tc.TenantID).Msg("producto creado")
	resp := toProductResponse(product)
	return &resp, nil
}

// GetByID devuelve un producto del tenant.
func (uc *ProductUseCase) GetByID(tc *tenant.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.owned(tc, id)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// Update actualiza los campos descriptivos y de precio; el stock nunca se
// toca por aquí. Cambiar el SKU re-valida la unicidad por tenant.
func (uc *ProductUseCase) Update(tc *tenant.Context, id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.owned(tc, id)
	if err != nil {
		return nil, err
	}
	if req.SKU != nil {
		sku := strings.TrimSpace(*req.SKU)
		if sku == "" {
			return nil, fmt.Errorf("%w: el SKU no puede quedar vacío", domain.ErrInvalidInput)
		}
		if !strings.EqualFold(sku, product.SKU) {
			if existing, err := uc.productRepo.GetByUserAndSKU(tc.TenantID, sku); err != nil {
				return nil, err
			} else if existing != nil {
				return nil, fmt.Errorf("%w: ya existe un producto con ese SKU", domain.ErrConflict)
			}
		}
		product.SKU = sku
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre no puede quedar vacío", domain.ErrInvalidInput)
		}
		product.Name = name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.PurchasePrice != nil {
		if req.PurchasePrice.IsNegative() {
			return nil, fmt.Errorf("%w: el precio de compra no puede ser negativo", domain.ErrInvalidInput)
		}
		product.PurchasePrice = *req.PurchasePrice
	}
	if req.SalePrice != nil {
		if req.SalePrice.IsNegative() {
			return nil, fmt.Errorf("%w: el precio de venta no puede ser negativo", domain.ErrInvalidInput)
		}
		product.SalePrice = *req.SalePrice
	}
	if req.UnitOfMeasure != nil {
		product.UnitOfMeasure = *req.UnitOfMeasure
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Context != nil {
		product.Context = req.Context
	}
	product.UpdatedAt = uc.now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// AdjustStock aplica un ajuste manual con signo bajo bloqueo de fila.
// Los ajustes negativos respetan la no-negatividad del stock.
func (uc *ProductUseCase) AdjustStock(ctx context.Context, tc *tenant.Context, id string, req dto.StockAdjustmentRequest) (*dto.ProductResponse, error) {
	if req.Adjustment == 0 {
		return nil, fmt.Errorf("%w: el ajuste no puede ser cero", domain.ErrInvalidInput)
	}
	var adjusted *entity.Product
	err := uc.runner.Run(ctx, func(_ repository.TransactionRepository, productRepo repository.ProductRepository) error {
		product, err := productRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil || product.UserID != tc.TenantID {
			return fmt.Errorf("%w: producto no encontrado", domain.ErrNotFound)
		}
		newStock, err := inventory.Adjust(product, req.Adjustment)
		if err != nil {
			return err
		}
		if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
			return err
		}
		product.CurrentStock = newStock
		product.UpdatedAt = uc.now()
		adjusted = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("product_id", id).
		Int("adjustment", req.Adjustment).
		Str("reason", req.Reason).
		Str("actor_id", tc.ActorID).
		Msg("stock ajustado manualmente")
	resp := toProductResponse(adjusted)
	return &resp, nil
}

// GetStock devuelve el nivel de stock puntual de un producto.
func (uc *ProductUseCase) GetStock(tc *tenant.Context, id string) (*dto.ProductStockResponse, error) {
	product, err := uc.owned(tc, id)
	if err != nil {
		return nil, err
	}
	return &dto.ProductStockResponse{ProductID: product.ID, CurrentStock: product.CurrentStock}, nil
}

// GetStockLevels devuelve los niveles de stock de varios productos en una
// sola consulta. Ids ajenos o inexistentes se omiten del resultado.
func (uc *ProductUseCase) GetStockLevels(tc *tenant.Context, ids []string) (*dto.StockLevelsResponse, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: se requiere al menos un id", domain.ErrInvalidInput)
	}
	stocks, err := uc.productRepo.GetStockByIDs(tc.TenantID, ids)
	if err != nil {
		return nil, err
	}
	return &dto.StockLevelsResponse{Stocks: stocks}, nil
}

// SetActive activa o desactiva el producto sin tocar su stock.
func (uc *ProductUseCase) SetActive(tc *tenant.Context, id string, active bool) (*dto.ProductResponse, error) {
	product, err := uc.owned(tc, id)
	if err != nil {
		return nil, err
	}
	product.Active = active
	product.UpdatedAt = uc.now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// Delete elimina un producto que nunca participó en transacciones; con
// historial se rechaza y queda desactivar.
func (uc *ProductUseCase) Delete(tc *tenant.Context, id string) error {
	if _, err := uc.owned(tc, id); err != nil {
		return err
	}
	count, err := uc.txRepo.CountItemsByProduct(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: el producto tiene transacciones asociadas", domain.ErrConflict)
	}
	if err := uc.productRepo.Delete(id); err != nil {
		return err
	}
	uc.log.Info().Str("product_id", id).Str("tenant_id", tc.TenantID).Msg("producto eliminado")
	return nil
}

// List devuelve los productos del tenant que cumplen el filtro.
func (uc *ProductUseCase) List(tc *tenant.Context, filter repository.ProductFilter, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	filter.UserID = tc.TenantID
	filter.Search = textutil.NormalizeSearch(filter.Search)
	filter.Limit = page.Limit
	filter.Offset = page.Offset
	products, err := uc.productRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

func (uc *ProductUseCase) owned(tc *tenant.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.UserID != tc.TenantID {
		return nil, fmt.Errorf("%w: producto no encontrado", domain.ErrNotFound)
	}
	return product, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		CurrentStock:  p.CurrentStock,
		UnitOfMeasure: p.UnitOfMeasure,
		Category:      p.Category,
		Active:        p.Active,
		Context:       p.Context,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
