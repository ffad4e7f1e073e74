package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/granjapro/granja-api/internal/application/billing"
	"github.com/granjapro/granja-api/internal/application/inventory"
	"github.com/granjapro/granja-api/internal/application/lotes"
	"github.com/granjapro/granja-api/internal/application/transfer"
	"github.com/granjapro/granja-api/internal/domain/pricing"
	"github.com/granjapro/granja-api/internal/infrastructure/postgres"
	httpRouter "github.com/granjapro/granja-api/internal/interfaces/http"
	"github.com/granjapro/granja-api/pkg/config"
	"github.com/granjapro/granja-api/pkg/logger"
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

	loteRepo := postgres.NewLoteRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	costRepo := postgres.NewCostEntryRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	pricingCfg := pricing.Config{
		PrecioBaseLevante:  cfg.Pricing.PrecioBaseLevante,
		PrecioBasePonedora: cfg.Pricing.PrecioBasePonedora,
		PrecioLibraEngorde: cfg.Pricing.PrecioLibraEngorde,
		TasaImpuesto:       cfg.Pricing.TasaImpuesto,
		SemanasPreLay:      cfg.Pricing.SemanasPreLay,
		SemanasPicoLay:     cfg.Pricing.SemanasPicoLay,
	}

	lotesUC := lotes.NewLoteUseCase(loteRepo, costRepo)
	transferUC := transfer.NewTransferLotUseCase(
		txRunner, loteRepo,
		transfer.Config{SemanasRecomendadas: cfg.Billing.SemanasRecomendadas},
		auditRepo, log.Component("transfer"),
	)
	clienteUC := billing.NewClienteUseCase(clienteRepo)
	createInvoiceUC := billing.NewCreateInvoiceUseCase(
		txRunner, loteRepo, clienteRepo, invoiceRepo,
		inventory.NewLedger(),
		billing.NewSequenceGenerator(cfg.Billing.Prefix),
		pricingCfg, auditRepo, log.Component("billing"),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LotesUC:       lotesUC,
		TransferUC:    transferUC,
		ClienteUC:     clienteUC,
		CreateInvoice: createInvoiceUC,
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
