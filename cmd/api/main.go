package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/huggingsoft/backoffice-api/internal/application/auth"
	"github.com/huggingsoft/backoffice-api/internal/application/tenant"
	"github.com/huggingsoft/backoffice-api/internal/application/transaction"
	"github.com/huggingsoft/backoffice-api/internal/application/usecase"
	"github.com/huggingsoft/backoffice-api/internal/infrastructure/email"
	infrapdf "github.com/huggingsoft/backoffice-api/internal/infrastructure/pdf"
	"github.com/huggingsoft/backoffice-api/internal/infrastructure/postgres"
	httpRouter "github.com/huggingsoft/backoffice-api/internal/interfaces/http"
	"github.com/huggingsoft/backoffice-api/pkg/config"
	"github.com/huggingsoft/backoffice-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	providerRepo := postgres.NewProviderRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	tokenRepo := postgres.NewTokenRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	resolver := tenant.NewResolver(userRepo)
	mailSender := email.NewGomailSender(cfg.Mail)
	pdfGenerator := infrapdf.NewMarotoReportGenerator()

	authUC := auth.NewUseCase(userRepo, tokenRepo, mailSender, auth.Config{
		JWTSecret:     cfg.JWT.Secret,
		JWTIssuer:     cfg.JWT.Issuer,
		JWTExpMinutes: cfg.JWT.Expiration,
		ResetBaseURL:  cfg.Mail.ResetBaseURL,
		ResetTokenTTL: time.Duration(cfg.Mail.TokenTTLHours) * time.Hour,
	}, log)
	userUC := usecase.NewUserUseCase(userRepo, log)
	clientUC := usecase.NewClientUseCase(clientRepo, txRepo, log)
	providerUC := usecase.NewProviderUseCase(providerRepo, txRepo, log)
	productUC := usecase.NewProductUseCase(productRepo, txRepo, txRunner, log)
	transactionUC := transaction.NewUseCase(txRunner, txRepo, productRepo, clientRepo, providerRepo, userRepo, log)
	reportUC := usecase.NewReportUseCase(txRepo, productRepo, clientRepo, userRepo, pdfGenerator, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		ClientUC:      clientUC,
		ProviderUC:    providerUC,
		ProductUC:     productUC,
		TransactionUC: transactionUC,
		ReportUC:      reportUC,
		Resolver:      resolver,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
