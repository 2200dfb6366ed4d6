package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huggingsoft/backoffice-api/internal/application/dto"
	"github.com/huggingsoft/backoffice-api/internal/application/tenant"
	"github.com/huggingsoft/backoffice-api/internal/application/usecase"
	"github.com/huggingsoft/backoffice-api/internal/domain"
	"github.com/huggingsoft/backoffice-api/internal/domain/entity"
	"github.com/huggingsoft/backoffice-api/internal/domain/repository"
	"github.com/huggingsoft/backoffice-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type memProductRepo struct {
	products map[string]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[string]*entity.Product)}
}

func (r *memProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}
func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }
func (r *memProductRepo) GetByUserAndSKU(userID, sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.UserID == userID && strings.EqualFold(p.SKU, sku) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *memProductRepo) Update(p *entity.Product) error { cp := *p; r.products[p.ID] = &cp; return nil }
func (r *memProductRepo) UpdateStock(id string, stock int) error {
	if p, ok := r.products[id]; ok {
		p.CurrentStock = stock
	}
	return nil
}
func (r *memProductRepo) Delete(id string) error { delete(r.products, id); return nil }
func (r *memProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.UserID != filter.UserID {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Active != nil && p.Active != *filter.Active {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}
func (r *memProductRepo) GetStockByIDs(userID string, ids []string) (map[string]int, error) {
	stocks := make(map[string]int)
	for _, id := range ids {
		if p, ok := r.products[id]; ok && p.UserID == userID {
			stocks[id] = p.CurrentStock
		}
	}
	return stocks, nil
}

// stubTxRepo solo responde al conteo de ítems; el resto no se usa aquí.
type stubTxRepo struct {
	itemsByProduct map[string]int64
}

func (r *stubTxRepo) Create(*entity.Transaction) error                  { return nil }
func (r *stubTxRepo) CreateItem(*entity.TransactionItem) error          { return nil }
func (r *stubTxRepo) GetByID(string) (*entity.Transaction, error)       { return nil, nil }
func (r *stubTxRepo) GetDetailByID(string) (*entity.Transaction, error) { return nil, nil }
func (r *stubTxRepo) Update(*entity.Transaction) error                  { return nil }
func (r *stubTxRepo) List(repository.TransactionFilter) ([]*entity.Transaction, error) {
	return nil, nil
}
func (r *stubTxRepo) CountByClient(string) (int64, error)   { return 0, nil }
func (r *stubTxRepo) CountByProvider(string) (int64, error) { return 0, nil }
func (r *stubTxRepo) CountItemsByProduct(productID string) (int64, error) {
	return r.itemsByProduct[productID], nil
}

// passthroughRunner ejecuta la función sobre los mismos repositorios en
// memoria; aquí no hace falta simular rollback porque el ajuste valida
// antes de escribir.
type passthroughRunner struct {
	txRepo      repository.TransactionRepository
	productRepo repository.ProductRepository
}

func (r *passthroughRunner) Run(_ context.Context, fn func(repository.TransactionRepository, repository.ProductRepository) error) error {
	return fn(r.txRepo, r.productRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type productFixture struct {
	products *memProductRepo
	txRepo   *stubTxRepo
	uc       *usecase.ProductUseCase
	tc       *tenant.Context
	otherTC  *tenant.Context
}

func newProductFixture() *productFixture {
	products := newMemProductRepo()
	txRepo := &stubTxRepo{itemsByProduct: make(map[string]int64)}
	runner := &passthroughRunner{txRepo: txRepo, productRepo: products}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return &productFixture{
		products: products,
		txRepo:   txRepo,
		uc:       usecase.NewProductUseCase(products, txRepo, runner, log),
		tc:       &tenant.Context{TenantID: "tenant-1", ActorID: "tenant-1"},
		otherTC:  &tenant.Context{TenantID: "tenant-2", ActorID: "tenant-2"},
	}
}

func (f *productFixture) addProduct(id, sku string, stock int) {
	now := time.Now()
	f.products.products[id] = &entity.Product{
		ID:           id,
		UserID:       f.tc.TenantID,
		SKU:          sku,
		Name:         "Producto " + sku,
		SalePrice:    decimal.NewFromInt(1000),
		CurrentStock: stock,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func createRequest(sku string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		SKU:           sku,
		Name:          "Tornillo 3/8",
		PurchasePrice: decimal.NewFromInt(500),
		SalePrice:     decimal.NewFromInt(900),
		InitialStock:  12,
		UnitOfMeasure: "unidad",
		Category:      "ferreteria",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta y edición
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_QuedaActivoConStockInicial(t *testing.T) {
	f := newProductFixture()

	resp, err := f.uc.Create(f.tc, createRequest("TOR-38"))
	require.NoError(t, err)
	assert.True(t, resp.Active)
	assert.Equal(t, 12, resp.CurrentStock)
	assert.Equal(t, "TOR-38", resp.SKU)
}

func TestCreateProduct_SKUDuplicadoEnElTenantFalla(t *testing.T) {
	f := newProductFixture()
	f.addProduct("p1", "TOR-38", 5)

	_, err := f.uc.Create(f.tc, createRequest("tor-38"))
	assert.ErrorIs(t, err, domain.ErrConflict, "el SKU no distingue mayúsculas")
}

func TestCreateProduct_MismoSKUEnOtroTenantEsValido(t *testing.T) {
	f := newProductFixture()
	f.addProduct("p1", "TOR-38", 5)

	_, err := f.uc.Create(f.otherTC, createRequest("TOR-38"))
	assert.NoError(t, err, "la unicidad del SKU es por tenant")
}

func TestCreateProduct_StockInicialNegativoFalla(t *testing.T) {
	f := newProductFixture()
	req := createRequest("TOR-38")
	req.InitialStock = -1

	_, err := f.uc.Create(f.tc, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateProduct_NoTocaElStock(t *testing.T) {
	f := newProductFixture()
	f.addProduct("p1", "TOR-38", 7)

	name := "Tornillo galvanizado 3/8"
	price := decimal.NewFromInt(1100)
	resp, err := f.uc.Update(f.tc, "p1", dto.UpdateProductRequest{Name: &name, SalePrice: &price})
	require.NoError(t, err)
	assert.Equal(t, "Tornillo galvanizado 3/8", resp.Name)
	assert.Equal(t, 7, resp.CurrentStock, "el stock solo cambia por transacciones o ajustes")
}

func TestUpdateProduct_CambioDeSKUReValidaUnicidad(t *testing.T) {
	f := newProductFixture()
	f.addProduct("p1", "TOR-38", 7)
	f.addProduct("p2", "TUE-14", 3)

	sku := "TOR-38"
	_, err := f.uc.Update(f.tc, "p2", dto.UpdateProductRequest{SKU: &sku})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Reescribir el propio SKU con otra capitalización no es conflicto.
	own := "tor-38"
	resp, err := f.uc.Update(f.tc, "p1", dto.UpdateProductRequest{SKU: &own})
	require.NoError(t, err)
	assert.Equal(t, "tor-38", resp.SKU)
}

func TestGetProduct_DeOtroTenantNoExiste(t *testing.T) {
	f := newProductFixture()
	f.addProduct("p1", "TOR-38", 7)

	_, err := f.uc.GetByID(f.otherTC, "p1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajuste de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_PositivoYNegativo(t *testing.T) {
	f := newProductFixture()
	f.addProduct("p1", "TOR-38", 10)
	ctx := context.Background()

	resp, err := f.uc.AdjustStock(ctx, f.tc, "p1", dto.StockAdjustmentRequest{Adjustment: 5, Reason: "conteo físico"})
	require.NoError(t, err)
	assert.Equal(t, 15, resp.CurrentStock)

	resp, err = f.uc.AdjustStock(ctx, f.tc, "p1", dto.StockAdjustmentRequest{Adjustment: -15, Reason: "merma"})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.CurrentStock)
}

func TestAdjustStock_BajoCeroFalla(t *testing.T) {
	f := newProductFixture()
	f.addProduct("p1", "TOR-38", 4)

	_, err := f.uc.AdjustStock(context.Background(), f.tc, "p1", dto.StockAdjustmentRequest{Adjustment: -5, Reason: "merma"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 4, f.products.products["p1"].CurrentStock, "un ajuste rechazado no toca el stock")
}

func TestAdjustStock_CeroFalla(t *testing.T) {
	f := newProductFixture()
	f.addProduct("p1", "TOR-38", 4)

	_, err := f.uc.AdjustStock(context.Background(), f.tc, "p1", dto.StockAdjustmentRequest{Adjustment: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjustStock_ProductoAjenoNoExiste(t *testing.T) {
	f := newProductFixture()
	f.addProduct("p1", "TOR-38", 4)

	_, err := f.uc.AdjustStock(context.Background(), f.otherTC, "p1", dto.StockAdjustmentRequest{Adjustment: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetStockLevels_OmiteIdsAjenosEInexistentes(t *testing.T) {
	f := newProductFixture()
	f.addProduct("p1", "TOR-38", 4)
	f.addProduct("p2", "TUE-14", 9)

	resp, err := f.uc.GetStockLevels(f.tc, []string{"p1", "p2", "p-fantasma"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"p1": 4, "p2": 9}, resp.Stocks)

	resp, err = f.uc.GetStockLevels(f.otherTC, []string{"p1", "p2"})
	require.NoError(t, err)
	assert.Empty(t, resp.Stocks, "otro tenant no ve estos productos")
}

func TestGetStockLevels_SinIdsFalla(t *testing.T) {
	f := newProductFixture()
	_, err := f.uc.GetStockLevels(f.tc, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Baja
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteProduct_ConHistorialFalla(t *testing.T) {
	f := newProductFixture()
	f.addProduct("p1", "TOR-38", 4)
	f.txRepo.itemsByProduct["p1"] = 3

	err := f.uc.Delete(f.tc, "p1")
	assert.ErrorIs(t, err, domain.ErrConflict, "con transacciones asociadas queda desactivar")

	resp, err := f.uc.SetActive(f.tc, "p1", false)
	require.NoError(t, err)
	assert.False(t, resp.Active)
}

func TestDeleteProduct_SinHistorialElimina(t *testing.T) {
	f := newProductFixture()
	f.addProduct("p1", "TOR-38", 4)

	require.NoError(t, f.uc.Delete(f.tc, "p1"))
	_, err := f.uc.GetByID(f.tc, "p1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
