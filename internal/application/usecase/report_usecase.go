package usecase

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/huggingsoft/backoffice-api/internal/application/dto"
	"github.com/huggingsoft/backoffice-api/internal/application/tenant"
	"github.com/huggingsoft/backoffice-api/internal/domain"
	"github.com/huggingsoft/backoffice-api/internal/domain/entity"
	"github.com/huggingsoft/backoffice-api/internal/domain/repository"
	"github.com/huggingsoft/backoffice-api/pkg/logger"
)

// ReportPDFGenerator puerto de render de informes a PDF.
type ReportPDFGenerator interface {
	SalesReportPDF(report *dto.SalesReportResponse, companyName string) ([]byte, error)
	InventoryReportPDF(products []dto.ProductResponse, companyName string) ([]byte, error)
}

// ReportUseCase informes de ventas e inventario. Solo cuenta transacciones
// COMPLETED; las canceladas y pendientes no suman.
type ReportUseCase struct {
	txRepo      repository.TransactionRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	userRepo    repository.UserRepository
	pdf         ReportPDFGenerator
	log         *logger.Logger
}

// NewReportUseCase construye el caso de uso de informes.
func NewReportUseCase(
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	userRepo repository.UserRepository,
	pdf ReportPDFGenerator,
	log *logger.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		txRepo:      txRepo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		userRepo:    userRepo,
		pdf:         pdf,
		log:         log,
	}
}

// SalesReport totaliza las ventas completadas del período, opcionalmente
// agrupadas por cliente. Las fechas son inclusivas.
func (uc *ReportUseCase) SalesReport(tc *tenant.Context, req dto.SalesReportRequest) (*dto.SalesReportResponse, error) {
	if req.DateFrom.IsZero() || req.DateTo.IsZero() {
		return nil, fmt.Errorf("%w: date_from y date_to son obligatorios", domain.ErrInvalidInput)
	}
	if req.DateTo.Before(req.DateFrom) {
		return nil, fmt.Errorf("%w: el rango de fechas está invertido", domain.ErrInvalidInput)
	}
	if req.GroupBy != "" && req.GroupBy != "client" {
		return nil, fmt.Errorf("%w: agrupación no soportada", domain.ErrInvalidInput)
	}

	from, to := req.DateFrom, req.DateTo
	sales, err := uc.txRepo.List(repository.TransactionFilter{
		UserID:   tc.TenantID,
		Type:     entity.TransactionTypeSale,
		Status:   entity.TransactionStatusCompleted,
		DateFrom: &from,
		DateTo:   &to,
	})
	if err != nil {
		return nil, err
	}

	report := &dto.SalesReportResponse{
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
		TotalSales: decimal.Zero,
		Count:      len(sales),
	}
	for _, s := range sales {
		report.TotalSales = report.TotalSales.Add(s.TotalAmount)
	}

	if req.GroupBy == "client" {
		rows, err := uc.groupByClient(sales)
		if err != nil {
			return nil, err
		}
		report.ByClient = rows
	}
	return report, nil
}

// SalesReportPDF genera el informe de ventas como PDF con el nombre de la
// empresa del tenant en la cabecera.
func (uc *ReportUseCase) SalesReportPDF(tc *tenant.Context, req dto.SalesReportRequest) ([]byte, error) {
	report, err := uc.SalesReport(tc, req)
	if err != nil {
		return nil, err
	}
	companyName, err := uc.companyName(tc)
	if err != nil {
		return nil, err
	}
	doc, err := uc.pdf.SalesReportPDF(report, companyName)
	if err != nil {
		return nil, fmt.Errorf("generar PDF de ventas: %w", err)
	}
	uc.log.Info().Str("tenant_id", tc.TenantID).Int("bytes", len(doc)).Msg("PDF de ventas generado")
	return doc, nil
}

// InventoryReport devuelve el estado del inventario filtrado por categoría
// y rangos de stock. Útil para detectar quiebres (max_stock=0) o excesos.
func (uc *ReportUseCase) InventoryReport(tc *tenant.Context, req dto.InventoryReportRequest) ([]dto.ProductResponse, error) {
	if req.MinStock != nil && req.MaxStock != nil && *req.MaxStock < *req.MinStock {
		return nil, fmt.Errorf("%w: el rango de stock está invertido", domain.ErrInvalidInput)
	}
	products, err := uc.productRepo.List(repository.ProductFilter{
		UserID:   tc.TenantID,
		Category: req.Category,
		MinStock: req.MinStock,
		MaxStock: req.MaxStock,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, toProductResponse(p))
	}
	return items, nil
}

// InventoryReportPDF genera el informe de inventario como PDF.
func (uc *ReportUseCase) InventoryReportPDF(tc *tenant.Context, req dto.InventoryReportRequest) ([]byte, error) {
	items, err := uc.InventoryReport(tc, req)
	if err != nil {
		return nil, err
	}
	companyName, err := uc.companyName(tc)
	if err != nil {
		return nil, err
	}
	doc, err := uc.pdf.InventoryReportPDF(items, companyName)
	if err != nil {
		return nil, fmt.Errorf("generar PDF de inventario: %w", err)
	}
	uc.log.Info().Str("tenant_id", tc.TenantID).Int("bytes", len(doc)).Msg("PDF de inventario generado")
	return doc, nil
}

func (uc *ReportUseCase) groupByClient(sales []*entity.Transaction) ([]dto.SalesByClientRow, error) {
	type acc struct {
		total decimal.Decimal
		count int
	}
	byClient := make(map[string]*acc)
	for _, s := range sales {
		if s.ClientID == nil {
			continue
		}
		a, ok := byClient[*s.ClientID]
		if !ok {
			a = &acc{total: decimal.Zero}
			byClient[*s.ClientID] = a
		}
		a.total = a.total.Add(s.TotalAmount)
		a.count++
	}

	rows := make([]dto.SalesByClientRow, 0, len(byClient))
	for clientID, a := range byClient {
		row := dto.SalesByClientRow{
			Client: dto.ClientSummaryResponse{ID: clientID},
			Total:  a.total,
			Count:  a.count,
		}
		client, err := uc.clientRepo.GetByID(clientID)
		if err != nil {
			return nil, err
		}
		if client != nil {
			row.Client.Name = client.Name
			row.Client.NIT = client.NIT
		}
		rows = append(rows, row)
	}
	// Orden estable: mayor venta primero, desempate por nombre.
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Total.Equal(rows[j].Total) {
			return rows[i].Total.GreaterThan(rows[j].Total)
		}
		return rows[i].Client.Name < rows[j].Client.Name
	})
	return rows, nil
}

func (uc *ReportUseCase) companyName(tc *tenant.Context) (string, error) {
	owner, err := uc.userRepo.GetByID(tc.TenantID)
	if err != nil {
		return "", err
	}
	if owner == nil {
		return "", fmt.Errorf("%w: usuario no encontrado", domain.ErrNotFound)
	}
	if owner.CompanyName != "" {
		return owner.CompanyName, nil
	}
	return owner.Username, nil
}
