package transaction

import (
	"context"
	"fmt"

	"github.com/huggingsoft/backoffice-api/internal/application/dto"
	"github.com/huggingsoft/backoffice-api/internal/application/tenant"
	"github.com/huggingsoft/backoffice-api/internal/domain"
	"github.com/huggingsoft/backoffice-api/internal/domain/entity"
	"github.com/huggingsoft/backoffice-api/internal/domain/repository"
)

// GetByID devuelve el detalle completo: ítems con proyección de producto,
// contraparte y creador resueltos. Transacciones de otro tenant responden
// como no encontradas.
func (uc *UseCase) GetByID(ctx context.Context, tc *tenant.Context, id string) (*dto.TransactionDetailResponse, error) {
	trx, err := uc.txRepo.GetDetailByID(id)
	if err != nil {
		return nil, err
	}
	if trx == nil || trx.UserID != tc.TenantID {
		return nil, fmt.Errorf("%w: transacción no encontrada", domain.ErrNotFound)
	}

	resp := toDetailResponse(trx)

	if trx.ClientID != nil {
		client, err := uc.clientRepo.GetByID(*trx.ClientID)
		if err != nil {
			return nil, err
		}
		if client != nil {
			resp.Client = &dto.ClientSummaryResponse{ID: client.ID, Name: client.Name, NIT: client.NIT}
		}
	}
	if trx.ProviderID != nil {
		provider, err := uc.providerRepo.GetByID(*trx.ProviderID)
		if err != nil {
			return nil, err
		}
		if provider != nil {
			resp.Provider = &dto.ProviderSummaryResponse{ID: provider.ID, Name: provider.Name, NIT: provider.NIT}
		}
	}
	creator, err := uc.userRepo.GetByID(trx.CreatedByID)
	if err != nil {
		return nil, err
	}
	if creator != nil {
		resp.CreatedBy = &dto.UserSummaryResponse{ID: creator.ID, Username: creator.Username}
	}
	return resp, nil
}

// List devuelve las transacciones del tenant que cumplen todos los filtros,
// ordenadas por fecha descendente.
func (uc *UseCase) List(ctx context.Context, tc *tenant.Context, req dto.ListTransactionsRequest) (*dto.TransactionListResponse, error) {
	if req.Type != "" && req.Type != entity.TransactionTypeSale && req.Type != entity.TransactionTypePurchase {
		return nil, fmt.Errorf("%w: tipo de transacción inválido", domain.ErrInvalidInput)
	}
	req.DefaultPage()

	filter := repository.TransactionFilter{
		UserID:          tc.TenantID,
		Type:            req.Type,
		Status:          req.Status,
		ClientID:        req.ClientID,
		ProviderID:      req.ProviderID,
		DateFrom:        req.DateFrom,
		DateTo:          req.DateTo,
		ReferenceNumber: req.ReferenceNumber,
		Limit:           req.Limit,
		Offset:          req.Offset,
	}
	rows, err := uc.txRepo.List(filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.TransactionSummaryResponse, 0, len(rows))
	for _, trx := range rows {
		items = append(items, dto.TransactionSummaryResponse{
			ID:              trx.ID,
			Type:            trx.Type,
			Status:          trx.Status,
			TransactionDate: trx.TransactionDate,
			ReferenceNumber: trx.ReferenceNumber,
			TotalAmount:     trx.TotalAmount,
			ClientID:        trx.ClientID,
			ProviderID:      trx.ProviderID,
		})
	}
	return &dto.TransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: req.Limit, Offset: req.Offset},
	}, nil
}

func toDetailResponse(trx *entity.Transaction) *dto.TransactionDetailResponse {
	resp := &dto.TransactionDetailResponse{
		ID:              trx.ID,
		Type:            trx.Type,
		Status:          trx.Status,
		TransactionDate: trx.TransactionDate,
		ReferenceNumber: trx.ReferenceNumber,
		Notes:           trx.Notes,
		TotalAmount:     trx.TotalAmount,
		Context:         trx.Context,
		Items:           make([]dto.TransactionItemResponse, 0, len(trx.Items)),
		CreatedAt:       trx.CreatedAt,
		UpdatedAt:       trx.UpdatedAt,
	}
	for _, it := range trx.Items {
		resp.Items = append(resp.Items, dto.TransactionItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ProductSKU:  it.ProductSKU,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
			Context:     it.Context,
		})
	}
	return resp
}
