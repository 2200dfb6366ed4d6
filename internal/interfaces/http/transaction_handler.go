package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/huggingsoft/backoffice-api/internal/application/dto"
	"github.com/huggingsoft/backoffice-api/internal/application/transaction"
)

// TransactionHandler maneja las peticiones HTTP de ventas y compras (protegido).
type TransactionHandler struct {
	uc *transaction.UseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *transaction.UseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// CreateSale godoc
// @Summary      Registrar venta
// @Description  Descuenta stock por línea de forma atómica; si cualquier
// @Description  línea dejaría stock negativo no se persiste nada.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "client_id e items"
// @Success      201   {object}  dto.TransactionDetailResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/transactions/sales [post]
func (h *TransactionHandler) CreateSale(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	trx, err := h.uc.CreateSale(c.Context(), GetTenant(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(trx)
}

// CreatePurchase godoc
// @Summary      Registrar compra
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "provider_id e items"
// @Success      201   {object}  dto.TransactionDetailResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/transactions/purchases [post]
func (h *TransactionHandler) CreatePurchase(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	trx, err := h.uc.CreatePurchase(c.Context(), GetTenant(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(trx)
}

// GetByID devuelve el detalle completo de una transacción.
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	trx, err := h.uc.GetByID(c.Context(), GetTenant(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(trx)
}

// Update modifica estado, notas, referencia o contexto de la cabecera.
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	trx, err := h.uc.Update(c.Context(), GetTenant(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(trx)
}

// Cancel godoc
// @Summary      Cancelar transacción
// @Description  Revierte el efecto de stock y marca CANCELLED. Cancelar dos
// @Description  veces responde 422.
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Success      200   {object}  dto.TransactionDetailResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/cancel [post]
func (h *TransactionHandler) Cancel(c *fiber.Ctx) error {
	trx, err := h.uc.Cancel(c.Context(), GetTenant(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(trx)
}

// List devuelve las transacciones del tenant con filtros en AND.
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var in dto.ListTransactionsRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.List(c.Context(), GetTenant(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}
