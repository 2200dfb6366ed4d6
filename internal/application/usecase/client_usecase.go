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

// ClientUseCase CRUD de clientes del tenant.
type ClientUseCase struct {
	clientRepo repository.ClientRepository
	txRepo     repository.TransactionRepository
	log        *logger.Logger
	now        func() time.Time
}

// NewClientUseCase construye el caso de uso de clientes.
func NewClientUseCase(clientRepo repository.ClientRepository, txRepo repository.TransactionRepository, log *logger.Logger) *ClientUseCase {
	return &ClientUseCase{clientRepo: clientRepo, txRepo: txRepo, log: log, now: time.Now}
}

// Create da de alta un cliente activo.
func (uc *ClientUseCase) Create(tc *tenant.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre del cliente es obligatorio", domain.ErrInvalidInput)
	}
	now := uc.now()
	client := &entity.Client{
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
	if err := uc.clientRepo.Create(client); err != nil {
		return nil, err
	}
	uc.log.Info().Str("client_id", client.ID).Str("tenant_id", tc.TenantID).Msg("cliente creado")
	resp := toClientResponse(client)
	return &resp, nil
}

// GetByID devuelve un cliente del tenant. Clientes ajenos responden como
// no encontrados.
func (uc *ClientUseCase) GetByID(tc *tenant.Context, id string) (*dto.ClientResponse, error) {
	client, err := uc.owned(tc, id)
	if err != nil {
		return nil, err
	}
	resp := toClientResponse(client)
	return &resp, nil
}

// Update actualiza campos del cliente; los omitidos no cambian.
func (uc *ClientUseCase) Update(tc *tenant.Context, id string, req dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.owned(tc, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre del cliente no puede quedar vacío", domain.ErrInvalidInput)
		}
		client.Name = name
	}
	if req.NIT != nil {
		client.NIT = *req.NIT
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.Context != nil {
		client.Context = req.Context
	}
	client.UpdatedAt = uc.now()
	if err := uc.clientRepo.Update(client); err != nil {
		return nil, err
	}
	resp := toClientResponse(client)
	return &resp, nil
}

// SetActive activa o desactiva el cliente. Un cliente inactivo conserva su
// historial pero no admite ventas nuevas a criterio del front.
func (uc *ClientUseCase) SetActive(tc *tenant.Context, id string, active bool) (*dto.ClientResponse, error) {
	client, err := uc.owned(tc, id)
	if err != nil {
		return nil, err
	}
	client.Active = active
	client.UpdatedAt = uc.now()
	if err := uc.clientRepo.Update(client); err != nil {
		return nil, err
	}
	resp := toClientResponse(client)
	return &resp, nil
}

// Delete elimina un cliente sin transacciones asociadas. Con historial la
// eliminación se rechaza; desactivar es el camino en ese caso.
func (uc *ClientUseCase) Delete(tc *tenant.Context, id string) error {
	if _, err := uc.owned(tc, id); err != nil {
		return err
	}
	count, err := uc.txRepo.CountByClient(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: el cliente tiene transacciones asociadas", domain.ErrConflict)
	}
	if err := uc.clientRepo.Delete(id); err != nil {
		return err
	}
	uc.log.Info().Str("client_id", id).Str("tenant_id", tc.TenantID).Msg("cliente eliminado")
	return nil
}

// List devuelve los clientes del tenant que cumplen el filtro.
func (uc *ClientUseCase) List(tc *tenant.Context, active *bool, search string, page dto.PageRequest) (*dto.ClientListResponse, error) {
	page.DefaultPage()
	clients, err := uc.clientRepo.List(repository.CounterpartyFilter{
		UserID: tc.TenantID,
		Active: active,
		Search: textutil.NormalizeSearch(search),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		items = append(items, toClientResponse(c))
	}
	return &dto.ClientListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

func (uc *ClientUseCase) owned(tc *tenant.Context, id string) (*entity.Client, error) {
	client, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil || client.UserID != tc.TenantID {
		return nil, fmt.Errorf("%w: cliente no encontrado", domain.ErrNotFound)
	}
	return client, nil
}

func toClientResponse(c *entity.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		NIT:       c.NIT,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Active:    c.Active,
		Context:   c.Context,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
