package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/huggingsoft/backoffice-api/internal/application/dto"
	"github.com/huggingsoft/backoffice-api/internal/application/usecase"
)

// ProviderHandler maneja las peticiones HTTP de proveedores (protegido).
type ProviderHandler struct {
	uc *usecase.ProviderUseCase
}

// NewProviderHandler construye el handler.
func NewProviderHandler(uc *usecase.ProviderUseCase) *ProviderHandler {
	return &ProviderHandler{uc: uc}
}

// Create da de alta un proveedor.
func (h *ProviderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProviderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	provider, err := h.uc.Create(GetTenant(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(provider)
}

// GetByID devuelve un proveedor del tenant.
func (h *ProviderHandler) GetByID(c *fiber.Ctx) error {
	provider, err := h.uc.GetByID(GetTenant(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(provider)
}

// Update actualiza un proveedor.
func (h *ProviderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProviderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	provider, err := h.uc.Update(GetTenant(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(provider)
}

// Activate reactiva un proveedor.
func (h *ProviderHandler) Activate(c *fiber.Ctx) error {
	provider, err := h.uc.SetActive(GetTenant(c), c.Params("id"), true)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(provider)
}

// Deactivate desactiva un proveedor conservando su historial.
func (h *ProviderHandler) Deactivate(c *fiber.Ctx) error {
	provider, err := h.uc.SetActive(GetTenant(c), c.Params("id"), false)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(provider)
}

// Delete elimina un proveedor sin compras asociadas.
func (h *ProviderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetTenant(c), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List devuelve los proveedores del tenant con filtros opcionales.
func (h *ProviderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	active, err := queryBool(c, "active")
	if err != nil {
		return badBody(c)
	}
	resp, err := h.uc.List(GetTenant(c), active, c.Query("search"), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}
