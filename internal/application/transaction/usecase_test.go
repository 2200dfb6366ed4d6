package transaction_test

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huggingsoft/backoffice-api/internal/application/dto"
	"github.com/huggingsoft/backoffice-api/internal/application/tenant"
	"github.com/huggingsoft/backoffice-api/internal/application/transaction"
	"github.com/huggingsoft/backoffice-api/internal/domain"
	"github.com/huggingsoft/backoffice-api/internal/domain/entity"
	"github.com/huggingsoft/backoffice-api/internal/domain/repository"
	"github.com/huggingsoft/backoffice-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	users     map[string]*entity.User
	clients   map[string]*entity.Client
	providers map[string]*entity.Provider
	products  map[string]*entity.Product
	txs       map[string]*entity.Transaction
	items     map[string][]*entity.TransactionItem
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[string]*entity.User),
		clients:   make(map[string]*entity.Client),
		providers: make(map[string]*entity.Provider),
		products:  make(map[string]*entity.Product),
		txs:       make(map[string]*entity.Transaction),
		items:     make(map[string][]*entity.TransactionItem),
	}
}

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) Create(u *entity.User) error          { r.s.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) { return r.s.users[id], nil }
func (r *fakeUserRepo) GetByUsername(string) (*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) GetByEmail(string) (*entity.User, error)    { return nil, nil }
func (r *fakeUserRepo) ExistsByUsername(string) (bool, error)      { return false, nil }
func (r *fakeUserRepo) ExistsByEmail(string) (bool, error)         { return false, nil }
func (r *fakeUserRepo) Update(u *entity.User) error                { r.s.users[u.ID] = u; return nil }
func (r *fakeUserRepo) Delete(id string) error                     { delete(r.s.users, id); return nil }
func (r *fakeUserRepo) ListSubUsers(string, *bool, int, int) ([]*entity.User, error) {
	return nil, nil
}

type fakeClientRepo struct{ s *fakeStore }

func (r *fakeClientRepo) Create(c *entity.Client) error             { r.s.clients[c.ID] = c; return nil }
func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) { return r.s.clients[id], nil }
func (r *fakeClientRepo) Update(c *entity.Client) error             { r.s.clients[c.ID] = c; return nil }
func (r *fakeClientRepo) Delete(id string) error                    { delete(r.s.clients, id); return nil }
func (r *fakeClientRepo) List(repository.CounterpartyFilter) ([]*entity.Client, error) {
	return nil, nil
}

type fakeProviderRepo struct{ s *fakeStore }

func (r *fakeProviderRepo) Create(p *entity.Provider) error             { r.s.providers[p.ID] = p; return nil }
func (r *fakeProviderRepo) GetByID(id string) (*entity.Provider, error) { return r.s.providers[id], nil }
func (r *fakeProviderRepo) Update(p *entity.Provider) error             { r.s.providers[p.ID] = p; return nil }
func (r *fakeProviderRepo) Delete(id string) error                      { delete(r.s.providers, id); return nil }
func (r *fakeProviderRepo) List(repository.CounterpartyFilter) ([]*entity.Provider, error) {
	return nil, nil
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error              { r.s.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error)  { return r.s.products[id], nil }
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *fakeProductRepo) GetByUserAndSKU(userID, sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.UserID == userID && strings.EqualFold(p.SKU, sku) {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *fakeProductRepo) UpdateStock(id string, stock int) error {
	r.s.products[id].CurrentStock = stock
	return nil
}
func (r *fakeProductRepo) Delete(id string) error { delete(r.s.products, id); return nil }
func (r *fakeProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) GetStockByIDs(userID string, ids []string) (map[string]int, error) {
	out := make(map[string]int)
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok && p.UserID == userID {
			out[id] = p.CurrentStock
		}
	}
	return out, nil
}

type fakeTxRepo struct{ s *fakeStore }

func (r *fakeTxRepo) Create(trx *entity.Transaction) error {
	cp := *trx
	cp.Items = nil
	r.s.txs[trx.ID] = &cp
	return nil
}
func (r *fakeTxRepo) CreateItem(item *entity.TransactionItem) error {
	cp := *item
	r.s.items[item.TransactionID] = append(r.s.items[item.TransactionID], &cp)
	return nil
}
func (r *fakeTxRepo) GetByID(id string) (*entity.Transaction, error) {
	trx, ok := r.s.txs[id]
	if !ok {
		return nil, nil
	}
	cp := *trx
	return &cp, nil
}
func (r *fakeTxRepo) GetDetailByID(id string) (*entity.Transaction, error) {
	trx, err := r.GetByID(id)
	if trx == nil || err != nil {
		return trx, err
	}
	for _, it := range r.s.items[id] {
		cp := *it
		if p, ok := r.s.products[it.ProductID]; ok {
			cp.ProductName = p.Name
			cp.ProductSKU = p.SKU
		}
		trx.Items = append(trx.Items, &cp)
	}
	// Mismo orden que la consulta real: la posición de la línea.
	sort.Slice(trx.Items, func(i, j int) bool { return trx.Items[i].Position < trx.Items[j].Position })
	return trx, nil
}
func (r *fakeTxRepo) Update(trx *entity.Transaction) error {
	cp := *trx
	cp.Items = nil
	r.s.txs[trx.ID] = &cp
	return nil
}
func (r *fakeTxRepo) List(filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, trx := range r.s.txs {
		if trx.UserID != filter.UserID {
			continue
		}
		if filter.Type != "" && trx.Type != filter.Type {
			continue
		}
		if filter.Status != "" && trx.Status != filter.Status {
			continue
		}
		cp := *trx
		out = append(out, &cp)
	}
	return out, nil
}
func (r *fakeTxRepo) CountByClient(clientID string) (int64, error) {
	var n int64
	for _, trx := range r.s.txs {
		if trx.ClientID != nil && *trx.ClientID == clientID {
			n++
		}
	}
	return n, nil
}
func (r *fakeTxRepo) CountByProvider(providerID string) (int64, error) {
	var n int64
	for _, trx := range r.s.txs {
		if trx.ProviderID != nil && *trx.ProviderID == providerID {
			n++
		}
	}
	return n, nil
}
func (r *fakeTxRepo) CountItemsByProduct(productID string) (int64, error) {
	var n int64
	for _, items := range r.s.items {
		for _, it := range items {
			if it.ProductID == productID {
				n++
			}
		}
	}
	return n, nil
}

// fakeRunner imita la atomicidad del TxRunner real: toma un snapshot del
// estado y lo restaura si el callback falla.
type fakeRunner struct{ s *fakeStore }

func (r *fakeRunner) Run(_ context.Context, fn func(repository.TransactionRepository, repository.ProductRepository) error) error {
	stocks := make(map[string]int, len(r.s.products))
	for id, p := range r.s.products {
		stocks[id] = p.CurrentStock
	}
	txs := make(map[string]*entity.Transaction, len(r.s.txs))
	for id, trx := range r.s.txs {
		txs[id] = trx
	}
	items := make(map[string][]*entity.TransactionItem, len(r.s.items))
	for id, its := range r.s.items {
		items[id] = its
	}

	if err := fn(&fakeTxRepo{r.s}, &fakeProductRepo{r.s}); err != nil {
		for id, stock := range stocks {
			r.s.products[id].CurrentStock = stock
		}
		r.s.txs = txs
		r.s.items = items
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del escenario
// ──────────────────────────────────────────────────────────────────────────────

const (
	tenantID      = "tenant-1"
	otherTenantID = "tenant-2"
)

type fixture struct {
	store *fakeStore
	uc    *transaction.UseCase
	tc    *tenant.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := newFakeStore()
	s.users[tenantID] = &entity.User{ID: tenantID, Username: "ferreteria", Active: true}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	uc := transaction.NewUseCase(
		&fakeRunner{s},
		&fakeTxRepo{s},
		&fakeProductRepo{s},
		&fakeClientRepo{s},
		&fakeProviderRepo{s},
		&fakeUserRepo{s},
		log,
	)
	return &fixture{store: s, uc: uc, tc: &tenant.Context{TenantID: tenantID, ActorID: tenantID}}
}

func (f *fixture) addClient(id string) *entity.Client {
	c := &entity.Client{ID: id, UserID: tenantID, Name: "Cliente " + id, Active: true}
	f.store.clients[id] = c
	return c
}

func (f *fixture) addProvider(id string) *entity.Provider {
	p := &entity.Provider{ID: id, UserID: tenantID, Name: "Proveedor " + id, Active: true}
	f.store.providers[id] = p
	return p
}

func (f *fixture) addProduct(id string, stock int) *entity.Product {
	p := &entity.Product{
		ID: id, UserID: tenantID, SKU: "SKU-" + id, Name: "Producto " + id,
		CurrentStock: stock, Active: true,
		SalePrice: decimal.NewFromInt(100), PurchasePrice: decimal.NewFromInt(60),
	}
	f.store.products[id] = p
	return p
}

func saleRequest(clientID string, items ...dto.CreateTransactionItemRequest) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{ClientID: &clientID, Items: items}
}

func purchaseRequest(providerID string, items ...dto.CreateTransactionItemRequest) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{ProviderID: &providerID, Items: items}
}

func item(productID string, qty int, price int64) dto.CreateTransactionItemRequest {
	return dto.CreateTransactionItemRequest{
		ProductID: productID, Quantity: qty, UnitPrice: decimal.NewFromInt(price),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación de ventas y compras
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_DescuentaStockYCalculaTotal(t *testing.T) {
	f := newFixture(t)
	f.addClient("c1")
	f.addProduct("p1", 10)

	resp, err := f.uc.CreateSale(context.Background(), f.tc, saleRequest("c1", item("p1", 4, 250)))
	require.NoError(t, err)

	assert.Equal(t, entity.TransactionTypeSale, resp.Type)
	assert.Equal(t, entity.TransactionStatusCompleted, resp.Status, "el estado por defecto es COMPLETED")
	assert.True(t, decimal.NewFromInt(1000).Equal(resp.TotalAmount), "total = 4 × 250")
	require.Len(t, resp.Items, 1)
	assert.True(t, decimal.NewFromInt(1000).Equal(resp.Items[0].Subtotal))
	assert.Equal(t, "Producto p1", resp.Items[0].ProductName)
	require.NotNil(t, resp.Client)
	assert.Equal(t, "Cliente c1", resp.Client.Name)
	assert.Equal(t, 6, f.store.products["p1"].CurrentStock)
}

func TestCreateSale_SinClienteFalla(t *testing.T) {
	f := newFixture(t)
	f.addProduct("p1", 10)

	_, err := f.uc.CreateSale(context.Background(), f.tc, dto.CreateTransactionRequest{
		Items: []dto.CreateTransactionItemRequest{item("p1", 1, 100)},
	})
	assert.ErrorIs(t, err, domain.ErrBusinessRule)
}

func TestCreateSale_ConProveedorFalla(t *testing.T) {
	f := newFixture(t)
	f.addClient("c1")
	f.addProvider("prov1")
	f.addProduct("p1", 10)

	req := saleRequest("c1", item("p1", 1, 100))
	providerID := "prov1"
	req.ProviderID = &providerID
	_, err := f.uc.CreateSale(context.Background(), f.tc, req)
	assert.ErrorIs(t, err, domain.ErrBusinessRule)
}

func TestCreateSale_StockInsuficienteNoPersisteNada(t *testing.T) {
	f := newFixture(t)
	f.addClient("c1")
	f.addProduct("p1", 3)

	_, err := f.uc.CreateSale(context.Background(), f.tc, saleRequest("c1", item("p1", 4, 100)))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, f.store.products["p1"].CurrentStock, "el stock no debe cambiar")
	assert.Empty(t, f.store.txs, "no debe quedar ninguna transacción")
}

func TestCreateSale_DosItemsMismoProductoExcedenStock(t *testing.T) {
	// Dos líneas de 3 sobre stock 5: la segunda ve el stock ya descontado
	// dentro de la misma transacción y la operación entera se revierte.
	f := newFixture(t)
	f.addClient("c1")
	f.addProduct("p1", 5)

	_, err := f.uc.CreateSale(context.Background(), f.tc,
		saleRequest("c1", item("p1", 3, 100), item("p1", 3, 100)))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, f.store.products["p1"].CurrentStock)
	assert.Empty(t, f.store.txs)
}

func TestCreateSale_DosItemsMismoProductoDentroDelStock(t *testing.T) {
	f := newFixture(t)
	f.addClient("c1")
	f.addProduct("p1", 6)

	resp, err := f.uc.CreateSale(context.Background(), f.tc,
		saleRequest("c1", item("p1", 3, 100), item("p1", 3, 150)))
	require.NoError(t, err)
	assert.Equal(t, 0, f.store.products["p1"].CurrentStock)
	assert.True(t, decimal.NewFromInt(750).Equal(resp.TotalAmount))
}

func TestCreateSale_ProductoDeOtroTenantNoExiste(t *testing.T) {
	f := newFixture(t)
	f.addClient("c1")
	ajeno := &entity.Product{ID: "px", UserID: otherTenantID, SKU: "X", Name: "Ajeno", CurrentStock: 50}
	f.store.products["px"] = ajeno

	_, err := f.uc.CreateSale(context.Background(), f.tc, saleRequest("c1", item("px", 1, 100)))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 50, ajeno.CurrentStock)
}

func TestCreateSale_SinItemsQuedaConTotalCero(t *testing.T) {
	f := newFixture(t)
	f.addClient("c1")

	resp, err := f.uc.CreateSale(context.Background(), f.tc, saleRequest("c1"))
	require.NoError(t, err, "una venta sin ítems es válida")
	assert.Empty(t, resp.Items)
	assert.True(t, resp.TotalAmount.IsZero(), "sin ítems el total es cero")
}

func TestCreateSale_ElDetalleConservaElOrdenDeLasLineas(t *testing.T) {
	f := newFixture(t)
	f.addClient("c1")
	f.addProduct("p1", 10)
	f.addProduct("p2", 10)

	// El pedido lleva p2 antes que p1; por nombre de producto sería al revés.

	resp, err := f.uc.CreateSale(context.Background(), f.tc,
		saleRequest("c1", item("p2", 1, 100), item("p1", 2, 100)))
	require.NoError(t, err)

	require.Len(t, resp.Items, 2)
	assert.Equal(t, "p2", resp.Items[0].ProductID, "la primera línea del pedido va primero")
	assert.Equal(t, "p1", resp.Items[1].ProductID)

	stored := f.store.items[resp.ID]
	require.Len(t, stored, 2)
	assert.Equal(t, 0, stored[0].Position)
	assert.Equal(t, 1, stored[1].Position)
}

func TestCreatePurchase_SumaStock(t *testing.T) {
	f := newFixture(t)
	f.addProvider("prov1")
	f.addProduct("p1", 2)

	resp, err := f.uc.CreatePurchase(context.Background(), f.tc, purchaseRequest("prov1", item("p1", 8, 60)))
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionTypePurchase, resp.Type)
	require.NotNil(t, resp.Provider)
	assert.Equal(t, 10, f.store.products["p1"].CurrentStock)
}

func TestCreatePurchase_SinProveedorFalla(t *testing.T) {
	f := newFixture(t)
	f.addProduct("p1", 2)

	_, err := f.uc.CreatePurchase(context.Background(), f.tc, dto.CreateTransactionRequest{
		Items: []dto.CreateTransactionItemRequest{item("p1", 1, 60)},
	})
	assert.ErrorIs(t, err, domain.ErrBusinessRule)
}

func TestCompraVentaVenta_LaUltimaFalla(t *testing.T) {
	// Compra 5 sobre stock 0, venta de 5, y una venta más de 1 debe fallar.
	f := newFixture(t)
	f.addClient("c1")
	f.addProvider("prov1")
	f.addProduct("p1", 0)

	_, err := f.uc.CreatePurchase(context.Background(), f.tc, purchaseRequest("prov1", item("p1", 5, 60)))
	require.NoError(t, err)
	assert.Equal(t, 5, f.store.products["p1"].CurrentStock)

	_, err = f.uc.CreateSale(context.Background(), f.tc, saleRequest("c1", item("p1", 5, 100)))
	require.NoError(t, err)
	assert.Equal(t, 0, f.store.products["p1"].CurrentStock)

	_, err = f.uc.CreateSale(context.Background(), f.tc, saleRequest("c1", item("p1", 1, 100)))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelación
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_VentaDevuelveStock(t *testing.T) {
	f := newFixture(t)
	f.addClient("c1")
	f.addProduct("p1", 10)

	created, err := f.uc.CreateSale(context.Background(), f.tc, saleRequest("c1", item("p1", 4, 100)))
	require.NoError(t, err)
	require.Equal(t, 6, f.store.products["p1"].CurrentStock)

	cancelled, err := f.uc.Cancel(context.Background(), f.tc, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusCancelled, cancelled.Status)
	assert.Equal(t, 10, f.store.products["p1"].CurrentStock, "la cancelación devuelve el stock")
}

func TestCancel_DosVecesFalla(t *testing.T) {
	f := newFixture(t)
	f.addClient("c1")
	f.addProduct("p1", 10)

	created, err := f.uc.CreateSale(context.Background(), f.tc, saleRequest("c1", item("p1", 2, 100)))
	require.NoError(t, err)

	_, err = f.uc.Cancel(context.Background(), f.tc, created.ID)
	require.NoError(t, err)

	_, err = f.uc.Cancel(context.Background(), f.tc, created.ID)
	assert.ErrorIs(t, err, domain.ErrBusinessRule)
	assert.Equal(t, 10, f.store.products["p1"].CurrentStock, "la segunda cancelación no toca el stock")
}

func TestCancel_CompraPuedeDejarStockNegativo(t *testing.T) {
	// Compra de 5 sobre stock 0, se venden 3, y se cancela la compra:
	// el stock queda en -3 y el faltante es visible.
	f := newFixture(t)
	f.addClient("c1")
	f.addProvider("prov1")
	f.addProduct("p1", 0)

	compra, err := f.uc.CreatePurchase(context.Background(), f.tc, purchaseRequest("prov1", item("p1", 5, 60)))
	require.NoError(t, err)

	_, err = f.uc.CreateSale(context.Background(), f.tc, saleRequest("c1", item("p1", 3, 100)))
	require.NoError(t, err)

	_, err = f.uc.Cancel(context.Background(), f.tc, compra.ID)
	require.NoError(t, err)
	assert.Equal(t, -3, f.store.products["p1"].CurrentStock)
}

func TestCancel_TransaccionAjenaNoExiste(t *testing.T) {
	f := newFixture(t)
	f.addClient("c1")
	f.addProduct("p1", 10)

	created, err := f.uc.CreateSale(context.Background(), f.tc, saleRequest("c1", item("p1", 1, 100)))
	require.NoError(t, err)

	otro := &tenant.Context{TenantID: otherTenantID, ActorID: otherTenantID}
	_, err = f.uc.Cancel(context.Background(), otro, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "otro tenant no distingue existencia")
}

// ──────────────────────────────────────────────────────────────────────────────
// Actualización y consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_CamposEditables(t *testing.T) {
	f := newFixture(t)
	f.addClient("c1")
	f.addProduct("p1", 10)

	created, err := f.uc.CreateSale(context.Background(), f.tc, saleRequest("c1", item("p1", 1, 100)))
	require.NoError(t, err)

	notes := "entrega parcial"
	ref := "FAC-0042"
	updated, err := f.uc.Update(context.Background(), f.tc, created.ID, dto.UpdateTransactionRequest{
		Notes: &notes, ReferenceNumber: &ref,
	})
	require.NoError(t, err)
	assert.Equal(t, "entrega parcial", updated.Notes)
	assert.Equal(t, "FAC-0042", updated.ReferenceNumber)
}

func TestUpdate_CancelarPorUpdateFalla(t *testing.T) {
	f := newFixture(t)
	f.addClient("c1")
	f.addProduct("p1", 10)

	created, err := f.uc.CreateSale(context.Background(), f.tc, saleRequest("c1", item("p1", 1, 100)))
	require.NoError(t, err)

	cancelled := entity.TransactionStatusCancelled
	_, err = f.uc.Update(context.Background(), f.tc, created.ID, dto.UpdateTransactionRequest{Status: &cancelled})
	assert.ErrorIs(t, err, domain.ErrBusinessRule)
}

func TestUpdate_TransaccionCanceladaEsInmutable(t *testing.T) {
	f := newFixture(t)
	f.addClient("c1")
	f.addProduct("p1", 10)

	created, err := f.uc.CreateSale(context.Background(), f.tc, saleRequest("c1", item("p1", 1, 100)))
	require.NoError(t, err)
	_, err = f.uc.Cancel(context.Background(), f.tc, created.ID)
	require.NoError(t, err)

	notes := "no debería entrar"
	_, err = f.uc.Update(context.Background(), f.tc, created.ID, dto.UpdateTransactionRequest{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrBusinessRule)
}

func TestGetByID_DeOtroTenantNoExiste(t *testing.T) {
	f := newFixture(t)
	f.addClient("c1")
	f.addProduct("p1", 10)

	created, err := f.uc.CreateSale(context.Background(), f.tc, saleRequest("c1", item("p1", 1, 100)))
	require.NoError(t, err)

	otro := &tenant.Context{TenantID: otherTenantID, ActorID: otherTenantID}
	_, err = f.uc.GetByID(context.Background(), otro, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_FiltraPorTipo(t *testing.T) {
	f := newFixture(t)
	f.addClient("c1")
	f.addProvider("prov1")
	f.addProduct("p1", 10)

	_, err := f.uc.CreateSale(context.Background(), f.tc, saleRequest("c1", item("p1", 2, 100)))
	require.NoError(t, err)
	_, err = f.uc.CreatePurchase(context.Background(), f.tc, purchaseRequest("prov1", item("p1", 5, 60)))
	require.NoError(t, err)

	resp, err := f.uc.List(context.Background(), f.tc, dto.ListTransactionsRequest{Type: entity.TransactionTypeSale})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, entity.TransactionTypeSale, resp.Items[0].Type)
}

func TestList_TipoInvalidoFalla(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.List(context.Background(), f.tc, dto.ListTransactionsRequest{Type: "TRANSFER"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSale_SubUsuarioQuedaComoCreador(t *testing.T) {
	f := newFixture(t)
	f.addClient("c1")
	f.addProduct("p1", 10)
	parentID := tenantID
	subID := uuid.New().String()
	f.store.users[subID] = &entity.User{ID: subID, Username: "vendedor", Active: true, ParentUserID: &parentID}

	sub := &tenant.Context{TenantID: tenantID, ActorID: subID, SubUser: true}
	resp, err := f.uc.CreateSale(context.Background(), sub, saleRequest("c1", item("p1", 1, 100)))
	require.NoError(t, err)
	require.NotNil(t, resp.CreatedBy)
	assert.Equal(t, "vendedor", resp.CreatedBy.Username)
	assert.Equal(t, tenantID, f.store.txs[resp.ID].UserID, "la venta pertenece al tenant padre")
}

func TestCreateSale_FechaPorDefectoEsAhora(t *testing.T) {
	f := newFixture(t)
	f.addClient("c1")
	f.addProduct("p1", 10)

	before := time.Now().Add(-time.Second)
	resp, err := f.uc.CreateSale(context.Background(), f.tc, saleRequest("c1", item("p1", 1, 100)))
	require.NoError(t, err)
	assert.True(t, resp.TransactionDate.After(before))
}
