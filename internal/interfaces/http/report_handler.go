package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/huggingsoft/backoffice-api/internal/application/dto"
	"github.com/huggingsoft/backoffice-api/internal/application/usecase"
)

// ReportHandler maneja los informes de ventas e inventario (protegido).
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// SalesReport godoc
// @Summary      Informe de ventas del período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        date_from  query  string  true   "inicio (RFC3339), inclusivo"
// @Param        date_to    query  string  true   "fin (RFC3339), inclusivo"
// @Param        group_by   query  string  false  "client para agrupar por cliente"
// @Success      200  {object}  dto.SalesReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) SalesReport(c *fiber.Ctx) error {
	var in dto.SalesReportRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	report, err := h.uc.SalesReport(GetTenant(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(report)
}

// SalesReportPDF devuelve el informe de ventas como PDF descargable.
func (h *ReportHandler) SalesReportPDF(c *fiber.Ctx) error {
	var in dto.SalesReportRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	doc, err := h.uc.SalesReportPDF(GetTenant(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="informe-ventas.pdf"`)
	return c.Send(doc)
}

// InventoryReport devuelve el estado del inventario filtrado.
func (h *ReportHandler) InventoryReport(c *fiber.Ctx) error {
	var in dto.InventoryReportRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	items, err := h.uc.InventoryReport(GetTenant(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// InventoryReportPDF devuelve el informe de inventario como PDF descargable.
func (h *ReportHandler) InventoryReportPDF(c *fiber.Ctx) error {
	var in dto.InventoryReportRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	doc, err := h.uc.InventoryReportPDF(GetTenant(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="informe-inventario.pdf"`)
	return c.Send(doc)
}
