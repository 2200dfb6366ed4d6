package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/huggingsoft/backoffice-api/internal/application/dto"
	"github.com/huggingsoft/backoffice-api/internal/application/usecase"
)

// ClientHandler maneja las peticiones HTTP de clientes (protegido).
type ClientHandler struct {
	uc *usecase.ClientUseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *usecase.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClientRequest  true  "datos del cliente"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	client, err := h.uc.Create(GetTenant(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// GetByID devuelve un cliente del tenant.
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	client, err := h.uc.GetByID(GetTenant(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(client)
}

// Update actualiza un cliente.
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	client, err := h.uc.Update(GetTenant(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(client)
}

// Activate reactiva un cliente.
func (h *ClientHandler) Activate(c *fiber.Ctx) error {
	client, err := h.uc.SetActive(GetTenant(c), c.Params("id"), true)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(client)
}

// Deactivate desactiva un cliente conservando su historial.
func (h *ClientHandler) Deactivate(c *fiber.Ctx) error {
	client, err := h.uc.SetActive(GetTenant(c), c.Params("id"), false)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(client)
}

// Delete godoc
// @Summary      Eliminar cliente sin transacciones
// @Tags         clients
// @Security     Bearer
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetTenant(c), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List devuelve los clientes del tenant con filtros opcionales.
func (h *ClientHandler) List(c *fiber.Ctx) error {
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
