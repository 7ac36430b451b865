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

	"github.com/jhoicas/RestoStock-api/internal/application/count"
	"github.com/jhoicas/RestoStock-api/internal/application/ledger"
	"github.com/jhoicas/RestoStock-api/internal/application/master"
	"github.com/jhoicas/RestoStock-api/internal/application/transfer"
	infrapdf "github.com/jhoicas/RestoStock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/RestoStock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/RestoStock-api/internal/interfaces/http"
	"github.com/jhoicas/RestoStock-api/pkg/config"
	"github.com/jhoicas/RestoStock-api/pkg/logger"
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

	movementRepo := postgres.NewMovementRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	countRepo := postgres.NewStockCountRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := ledger.NewLedgerUseCase(movementRepo, itemRepo, storeRepo)
	transferUC := transfer.NewTransferUseCase(txRunner, transferRepo, itemRepo, storeRepo)
	countUC := count.NewCountUseCase(
		txRunner, countRepo, movementRepo, itemRepo, storeRepo,
		cfg.Count.PinExpectedToCompletion,
	)
	reportUC := count.NewReportUseCase(countRepo, itemRepo, storeRepo, infrapdf.NewCountReportGenerator())
	masterUC := master.NewMasterUseCase(itemRepo, storeRepo, notificationRepo)

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
		Title:    "RestoStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:    ledgerUC,
		TransferUC:  transferUC,
		CountUC:     countUC,
		CountReport: reportUC,
		MasterUC:    masterUC,
		JWTSecret:   cfg.JWT.Secret,
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
