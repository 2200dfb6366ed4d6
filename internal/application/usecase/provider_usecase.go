package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/huggingsoft/backoffice-api/internal/application/dto"
	"github.com/huggingsoft/backoffice-api/internal/application/tenant"
	"github.com/huggingsoft/backoffice-api/internal/domain"
	"github.com/huggingsoft/backoffice-api/internal/domain/entity"
	"github.com/huggingsoft/backoffice-api/internal/domain/repository"
	"github.com/huggingsoft/backoffice-api/pkg/logger"
	"github.com/huggingsoft/backoffice-api/pkg/textutil"
)

// ProviderUseCase CRUD de proveedores del tenant. Mismo contrato que los
// clientes, con la compra como transacción asociada.
type ProviderUseCase struct {
	providerRepo repository.ProviderRepository
	txRepo       repository.TransactionRepository
	log          *logger.Logger
	now          func() time.Time
}

// NewProviderUseCase construye el caso de uso de proveedores.
func NewProviderUseCase(providerRepo repository.ProviderRepository, txRepo repository.TransactionRepository, log *logger.Logger) *ProviderUseCase {
	return &ProviderUseCase{providerRepo: providerRepo, txRepo: txRepo, log: log, now: time.Now}
}

// Create da de alta un proveedor activo.
func (uc *ProviderUseCase) Create(tc *tenant.Context, req dto.CreateProviderRequest) (*dto.ProviderResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre del proveedor es obligatorio", domain.ErrInvalidInput)
	}
	now := uc.now()
	provider := &entity.Provider{
		ID:        uuid.New().String(),
		UserID:    tc.TenantID,
		Name:      name,
		NIT:       req.NIT,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Active:    true,
		Context:   req.Context,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.providerRepo.Create(provider); err != nil {
		return nil, err
	}
	uc.log.Info().Str("provider_id", provider.ID).Str("tenant_id", tc.TenantID).Msg("proveedor creado")
	resp := toProviderResponse(provider)
	return &resp, nil
}

// GetByID devuelve un proveedor del tenant.
func (uc *ProviderUseCase) GetByID(tc *tenant.Context, id string) (*dto.ProviderResponse, error) {
	provider, err := uc.owned(tc, id)
	if err != nil {
		return nil, err
	}
	resp := toProviderResponse(provider)
	return &resp, nil
}

// Update actualiza campos del proveedor; los omitidos no cambian.
func (uc *ProviderUseCase) Update(tc *tenant.Context, id string, req dto.UpdateProviderRequest) (*dto.ProviderResponse, error) {
	provider, err := uc.owned(tc, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre del proveedor no puede quedar vacío", domain.ErrInvalidInput)
		}
		provider.Name = name
	}
	if req.NIT != nil {
		provider.NIT = *req.NIT
	}
	if req.Email != nil {
		provider.Email = *req.Email
	}
	if req.Phone != nil {
		provider.Phone = *req.Phone
	}
	if req.Address != nil {
		provider.Address = *req.Address
	}
	if req.Context != nil {
		provider.Context = req.Context
	}
	provider.UpdatedAt = uc.now()
	if err := uc.providerRepo.Update(provider); err != nil {
		return nil, err
	}
	resp := toProviderResponse(provider)
	return &resp, nil
}

// SetActive activa o desactiva el proveedor.
func (uc *ProviderUseCase) SetActive(tc *tenant.Context, id string, active bool) (*dto.ProviderResponse, error) {
	provider, err := uc.owned(tc, id)
	if err != nil {
		return nil, err
	}
	provider.Active = active
	provider.UpdatedAt = uc.now()
	if err := uc.providerRepo.Update(provider); err != nil {
		return nil, err
	}
	resp := toProviderResponse(provider)
	return &resp, nil
}

// Delete elimina un proveedor sin compras asociadas; con historial se
// rechaza y queda desactivar.
func (uc *ProviderUseCase) Delete(tc *tenant.Context, id string) error {
	if _, err := uc.owned(tc, id); err != nil {
		return err
	}
	count, err := uc.txRepo.CountByProvider(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: el proveedor tiene transacciones asociadas", domain.ErrConflict)
	}
	if err := uc.providerRepo.Delete(id); err != nil {
		return err
	}
	uc.log.Info().Str("provider_id", id).Str("tenant_id", tc.TenantID).Msg("proveedor eliminado")
	return nil
}

// List devuelve los proveedores del tenant que cumplen el filtro.
func (uc *ProviderUseCase) List(tc *tenant.Context, active *bool, search string, page dto.PageRequest) (*dto.ProviderListResponse, error) {
	page.DefaultPage()
	providers, err := uc.providerRepo.List(repository.CounterpartyFilter{
		UserID: tc.TenantID,
		Active: active,
		Search: textutil.NormalizeSearch(search),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProviderResponse, 0, len(providers))
	for _, p := range providers {
		items = append(items, toProviderResponse(p))
	}
	return &dto.ProviderListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

func (uc *ProviderUseCase) owned(tc *tenant.Context, id string) (*entity.Provider, error) {
	provider, err := uc.providerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if provider == nil || provider.UserID != tc.TenantID {
		return nil, fmt.Errorf("%w: proveedor no encontrado", domain.ErrNotFound)
	}
	return provider, nil
}

func toProviderResponse(p *entity.Provider) dto.ProviderResponse {
	return dto.ProviderResponse{
		ID:        p.ID,
		Name:      p.Name,
		NIT:       p.NIT,
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
		Active:    p.Active,
		Context:   p.Context,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
