package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/huggingsoft/backoffice-api/internal/application/dto"
	"github.com/huggingsoft/backoffice-api/internal/application/usecase"
	"github.com/huggingsoft/backoffice-api/internal/domain/repository"
)

// ProductHandler maneja las peticiones HTTP de productos (protegido).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "sku, name, precios y stock inicial"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	product, err := h.uc.Create(GetTenant(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// GetByID devuelve un producto del tenant.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.GetByID(GetTenant(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(product)
}

// Update actualiza los campos descriptivos y de precio.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	product, err := h.uc.Update(GetTenant(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(product)
}

// AdjustStock godoc
// @Summary      Ajuste manual de stock
// @Description  Aplica un delta con signo bajo bloqueo de fila. Un ajuste
// @Description  negativo que dejaría stock negativo se rechaza con 409.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockAdjustmentRequest  true  "adjustment con signo y reason"
// @Success      200   {object}  dto.ProductResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock/adjust [post]
func (h *ProductHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.StockAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	product, err := h.uc.AdjustStock(c.Context(), GetTenant(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(product)
}

// GetStock devuelve el nivel de stock puntual.
func (h *ProductHandler) GetStock(c *fiber.Ctx) error {
	stock, err := h.uc.GetStock(GetTenant(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(stock)
}

// GetStockLevels devuelve el stock de varios productos en una sola consulta
// (query param ids separado por comas).
func (h *ProductHandler) GetStockLevels(c *fiber.Ctx) error {
	raw := strings.Split(c.Query("ids"), ",")
	ids := make([]string, 0, len(raw))
	for _, id := range raw {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	resp, err := h.uc.GetStockLevels(GetTenant(c), ids)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}

// Activate reactiva un producto.
func (h *ProductHandler) Activate(c *fiber.Ctx) error {
	product, err := h.uc.SetActive(GetTenant(c), c.Params("id"), true)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(product)
}

// Deactivate desactiva un producto sin tocar su stock.
func (h *ProductHandler) Deactivate(c *fiber.Ctx) error {
	product, err := h.uc.SetActive(GetTenant(c), c.Params("id"), false)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(product)
}

// Delete elimina un producto que nunca participó en transacciones.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetTenant(c), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List devuelve los productos del tenant con filtros opcionales.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	active, err := queryBool(c, "active")
	if err != nil {
		return badBody(c)
	}
	minStock, err := queryInt(c, "min_stock")
	if err != nil {
		return badBody(c)
	}
	maxStock, err := queryInt(c, "max_stock")
	if err != nil {
		return badBody(c)
	}
	filter := repository.ProductFilter{
		Category: c.Query("category"),
		Active:   active,
		Search:   c.Query("search"),
		MinStock: minStock,
		MaxStock: maxStock,
	}
	resp, err := h.uc.List(GetTenant(c), filter, page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}
