// Package transaction implementa el motor de ventas y compras: creación
// atómica con mutación de stock, cancelación con reversa y consultas.
package transaction

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/huggingsoft/backoffice-api/internal/application/dto"
	"github.com/huggingsoft/backoffice-api/internal/application/tenant"
	"github.com/huggingsoft/backoffice-api/internal/domain"
	"github.com/huggingsoft/backoffice-api/internal/domain/entity"
	"github.com/huggingsoft/backoffice-api/internal/domain/inventory"
	"github.com/huggingsoft/backoffice-api/internal/domain/repository"
	"github.com/huggingsoft/backoffice-api/pkg/logger"
)

// UseCase casos de uso de transacciones. Las escrituras que tocan stock
// corren dentro del TxRunner; las lecturas usan los repos sobre el pool.
type UseCase struct {
	runner       TxRunner
	txRepo       repository.TransactionRepository
	productRepo  repository.ProductRepository
	clientRepo   repository.ClientRepository
	providerRepo repository.ProviderRepository
	userRepo     repository.UserRepository
	log          *logger.Logger
	now          func() time.Time
}

// NewUseCase construye el caso de uso de transacciones.
func NewUseCase(
	runner TxRunner,
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	providerRepo repository.ProviderRepository,
	userRepo repository.UserRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		runner:       runner,
		txRepo:       txRepo,
		productRepo:  productRepo,
		clientRepo:   clientRepo,
		providerRepo: providerRepo,
		userRepo:     userRepo,
		log:          log,
		now:          time.Now,
	}
}

// CreateSale registra una venta: valida cliente y productos del tenant,
// descuenta stock por línea bajo bloqueo de fila y persiste cabecera e
// ítems en una sola transacción de BD. Si cualquier línea dejaría stock
// negativo, nada se persiste.
func (uc *UseCase) CreateSale(ctx context.Context, tc *tenant.Context, req dto.CreateTransactionRequest) (*dto.TransactionDetailResponse, error) {
	if req.ClientID == nil || *req.ClientID == "" {
		return nil, fmt.Errorf("%w: una venta requiere cliente", domain.ErrBusinessRule)
	}
	if req.ProviderID != nil {
		return nil, fmt.Errorf("%w: una venta no lleva proveedor", domain.ErrBusinessRule)
	}
	client, err := uc.clientRepo.GetByID(*req.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.UserID != tc.TenantID {
		return nil, fmt.Errorf("%w: cliente no encontrado", domain.ErrNotFound)
	}
	return uc.create(ctx, tc, entity.TransactionTypeSale, req)
}

// CreatePurchase registra una compra: valida proveedor y productos del
// tenant y suma stock por línea, con la misma atomicidad que las ventas.
func (uc *UseCase) CreatePurchase(ctx context.Context, tc *tenant.Context, req dto.CreateTransactionRequest) (*dto.TransactionDetailResponse, error) {
	if req.ProviderID == nil || *req.ProviderID == "" {
		return nil, fmt.Errorf("%w: una compra requiere proveedor", domain.ErrBusinessRule)
	}
	if req.ClientID != nil {
		return nil, fmt.Errorf("%w: una compra no lleva cliente", domain.ErrBusinessRule)
	}
	provider, err := uc.providerRepo.GetByID(*req.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil || provider.UserID != tc.TenantID {
		return nil, fmt.Errorf("%w: proveedor no encontrado", domain.ErrNotFound)
	}
	return uc.create(ctx, tc, entity.TransactionTypePurchase, req)
}

func (uc *UseCase) create(ctx context.Context, tc *tenant.Context, txType string, req dto.CreateTransactionRequest) (*dto.TransactionDetailResponse, error) {
	// Una transacción sin ítems es válida y queda con total cero.
	for _, it := range req.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cada ítem requiere producto y cantidad positiva", domain.ErrInvalidInput)
		}
		if it.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: el precio unitario no puede ser negativo", domain.ErrInvalidInput)
		}
	}

	status := req.Status
	if status == "" {
		status = entity.TransactionStatusCompleted
	}
	if status != entity.TransactionStatusPending && status != entity.TransactionStatusCompleted {
		return nil, fmt.Errorf("%w: estado inicial inválido", domain.ErrInvalidInput)
	}

	now := uc.now()
	txDate := now
	if req.TransactionDate != nil {
		txDate = *req.TransactionDate
	}

	trx := &entity.Transaction{
		ID:              uuid.New().String(),
		UserID:          tc.TenantID,
		CreatedByID:     tc.ActorID,
		Type:            txType,
		Status:          status,
		ClientID:        req.ClientID,
		ProviderID:      req.ProviderID,
		TransactionDate: txDate,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
		Context:         req.Context,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	dir := inventory.DirectionDecrease
	if txType == entity.TransactionTypePurchase {
		dir = inventory.DirectionIncrease
	}

	err := uc.runner.Run(ctx, func(txRepo repository.TransactionRepository, productRepo repository.ProductRepository) error {
		total := decimal.Zero
		// Bloquear productos en orden estable para evitar interbloqueos
		// cuando dos transacciones comparten productos.
		for _, it := range sortedByProduct(req.Items) {
			product, err := productRepo.GetForUpdate(it.ProductID)
			if err != nil {
				return err
			}
			if product == nil || product.UserID != tc.TenantID {
				return fmt.Errorf("%w: producto %s no encontrado", domain.ErrNotFound, it.ProductID)
			}
			newStock, err := inventory.Apply(product, it.Quantity, dir)
			if err != nil {
				return err
			}
			if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
				return err
			}
			product.CurrentStock = newStock
		}
		for pos, it := range req.Items {
			subtotal := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
			total = total.Add(subtotal)
			trx.Items = append(trx.Items, &entity.TransactionItem{
				ID:            uuid.New().String(),
				TransactionID: trx.ID,
				ProductID:     it.ProductID,
				Position:      pos,
				Quantity:      it.Quantity,
				UnitPrice:     it.UnitPrice,
				Subtotal:      subtotal,
				Context:       it.Context,
			})
		}
		trx.TotalAmount = total
		if err := txRepo.Create(trx); err != nil {
			return err
		}
		for _, item := range trx.Items {
			if err := txRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("transaction_id", trx.ID).
		Str("type", trx.Type).
		Str("tenant_id", tc.TenantID).
		Str("actor_id", tc.ActorID).
		Int("items", len(trx.Items)).
		Msg("transacción registrada")

	return uc.GetByID(ctx, tc, trx.ID)
}

// Cancel revierte el efecto de stock de la transacción y la marca como
// CANCELLED, todo en una transacción de BD. Cancelar dos veces es una
// violación de regla de negocio. Revertir una compra puede dejar stock
// negativo; eso queda registrado tal cual.
func (uc *UseCase) Cancel(ctx context.Context, tc *tenant.Context, id string) (*dto.TransactionDetailResponse, error) {
	err := uc.runner.Run(ctx, func(txRepo repository.TransactionRepository, productRepo repository.ProductRepository) error {
		trx, err := txRepo.GetDetailByID(id)
		if err != nil {
			return err
		}
		if trx == nil || trx.UserID != tc.TenantID {
			return fmt.Errorf("%w: transacción no encontrada", domain.ErrNotFound)
		}
		if trx.Status == entity.TransactionStatusCancelled {
			return fmt.Errorf("%w: la transacción ya está cancelada", domain.ErrBusinessRule)
		}

		original := inventory.DirectionDecrease
		if trx.Type == entity.TransactionTypePurchase {
			original = inventory.DirectionIncrease
		}
		items := make([]*entity.TransactionItem, len(trx.Items))
		copy(items, trx.Items)
		sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
		for _, it := range items {
			product, err := productRepo.GetForUpdate(it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: producto %s no encontrado", domain.ErrNotFound, it.ProductID)
			}
			if err := productRepo.UpdateStock(product.ID, inventory.Revert(product, it.Quantity, original)); err != nil {
				return err
			}
		}

		trx.Status = entity.TransactionStatusCancelled
		trx.UpdatedAt = uc.now()
		return txRepo.Update(trx)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("transaction_id", id).Str("tenant_id", tc.TenantID).Msg("transacción cancelada")
	return uc.GetByID(ctx, tc, id)
}

// Update modifica los campos editables de la cabecera (estado, notas,
// referencia, contexto). Nunca toca ítems, contrapartes ni totales; la
// transición de estado hacia CANCELLED va por Cancel, no por aquí.
func (uc *UseCase) Update(ctx context.Context, tc *tenant.Context, id string, req dto.UpdateTransactionRequest) (*dto.TransactionDetailResponse, error) {
	trx, err := uc.txRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if trx == nil || trx.UserID != tc.TenantID {
		return nil, fmt.Errorf("%w: transacción no encontrada", domain.ErrNotFound)
	}
	if trx.Status == entity.TransactionStatusCancelled {
		return nil, fmt.Errorf("%w: una transacción cancelada no se puede modificar", domain.ErrBusinessRule)
	}

	if req.Status != nil {
		switch *req.Status {
		case entity.TransactionStatusPending, entity.TransactionStatusCompleted:
			trx.Status = *req.Status
		case entity.TransactionStatusCancelled:
			return nil, fmt.Errorf("%w: la cancelación se hace por la operación de cancelar", domain.ErrBusinessRule)
		default:
			return nil, fmt.Errorf("%w: estado inválido", domain.ErrInvalidInput)
		}
	}
	if req.Notes != nil {
		trx.Notes = *req.Notes
	}
	if req.ReferenceNumber != nil {
		trx.ReferenceNumber = *req.ReferenceNumber
	}
	if req.Context != nil {
		trx.Context = req.Context
	}
	trx.UpdatedAt = uc.now()

	if err := uc.txRepo.Update(trx); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, tc, id)
}

// sortedByProduct devuelve una copia de los ítems ordenada por producto,
// el orden en que se toman los bloqueos de fila.
func sortedByProduct(items []dto.CreateTransactionItemRequest) []dto.CreateTransactionItemRequest {
	out := make([]dto.CreateTransactionItemRequest, len(items))
	copy(out, items)
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}
