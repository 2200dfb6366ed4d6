package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/huggingsoft/backoffice-api/internal/application/auth"
	"github.com/huggingsoft/backoffice-api/internal/application/tenant"
	"github.com/huggingsoft/backoffice-api/internal/application/transaction"
	"github.com/huggingsoft/backoffice-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	UserUC        *usecase.UserUseCase
	ClientUC      *usecase.ClientUseCase
	ProviderUC    *usecase.ProviderUseCase
	ProductUC     *usecase.ProductUseCase
	TransactionUC *transaction.UseCase
	ReportUC      *usecase.ReportUseCase
	Resolver      *tenant.Resolver
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/password-reset", authHandler.RequestPasswordReset)
	authGroup.Post("/password-reset/confirm", authHandler.ConfirmPasswordReset)

	// Rutas protegidas (requieren Bearer Token; el middleware resuelve el tenant)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Resolver))

	// Users: perfil propio, empresa y sub-usuarios (protegido)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.GetProfile)
	users.Put("/me", userHandler.UpdateProfile)
	users.Put("/me/password", userHandler.ChangePassword)
	users.Delete("/me", userHandler.DeleteAccount)
	users.Put("/company", userHandler.UpdateCompanyInfo)
	users.Post("/sub-users", userHandler.CreateSubUser)
	users.Get("/sub-users", userHandler.ListSubUsers)
	users.Get("/sub-users/:id", userHandler.GetSubUser)
	users.Put("/sub-users/:id", userHandler.UpdateSubUser)
	users.Post("/sub-users/:id/activate", userHandler.ActivateSubUser)
	users.Post("/sub-users/:id/deactivate", userHandler.DeactivateSubUser)
	users.Delete("/sub-users/:id", userHandler.DeleteSubUser)

	// Clients (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Post("/:id/activate", clientHandler.Activate)
	clients.Post("/:id/deactivate", clientHandler.Deactivate)
	clients.Delete("/:id", clientHandler.Delete)

	// Providers (protegido)
	providers := protected.Group("/providers")
	providerHandler := NewProviderHandler(deps.ProviderUC)
	providers.Post("/", providerHandler.Create)
	providers.Get("/", providerHandler.List)
	providers.Get("/:id", providerHandler.GetByID)
	providers.Put("/:id", providerHandler.Update)
	providers.Post("/:id/activate", providerHandler.Activate)
	providers.Post("/:id/deactivate", providerHandler.Deactivate)
	providers.Delete("/:id", providerHandler.Delete)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/stock-levels", productHandler.GetStockLevels)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Get("/:id/stock", productHandler.GetStock)
	products.Post("/:id/stock/adjust", productHandler.AdjustStock)
	products.Post("/:id/activate", productHandler.Activate)
	products.Post("/:id/deactivate", productHandler.Deactivate)
	products.Delete("/:id", productHandler.Delete)

	// Transactions (protegido)
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.TransactionUC)
	transactions.Post("/sales", transactionHandler.CreateSale)
	transactions.Post("/purchases", transactionHandler.CreatePurchase)
	transactions.Get("/", transactionHandler.List)
	transactions.Get("/:id", transactionHandler.GetByID)
	transactions.Put("/:id", transactionHandler.Update)
	transactions.Post("/:id/cancel", transactionHandler.Cancel)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/sales", reportHandler.SalesReport)
	reports.Get("/sales/pdf", reportHandler.SalesReportPDF)
	reports.Get("/inventory", reportHandler.InventoryReport)
	reports.Get("/inventory/pdf", reportHandler.InventoryReportPDF)
}
