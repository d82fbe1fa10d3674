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

	"github.com/Nirmal21D/StockMaster-sub001/docs"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/adjustment"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/auth"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/delivery"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/ledger"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/numbering"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/receipt"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/requisition"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/stock"
	"github.com/Nirmal21D/StockMaster-sub001/internal/application/usecase"
	"github.com/Nirmal21D/StockMaster-sub001/internal/infrastructure/postgres"
	httpRouter "github.com/Nirmal21D/StockMaster-sub001/internal/interfaces/http"
	"github.com/Nirmal21D/StockMaster-sub001/pkg/config"
	"github.com/Nirmal21D/StockMaster-sub001/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	levelRepo := postgres.NewStockLevelRepository(pool)
	receiptRepo := postgres.NewReceiptRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	requisitionRepo := postgres.NewRequisitionRepository(pool)
	adjustmentRepo := postgres.NewAdjustmentRepository(pool)
	seqRepo := postgres.NewSequenceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Motor del libro: única vía de escritura sobre movements y stock_levels.
	engine := ledger.NewEngine(txRunner, log.Zerolog())
	numberingSvc := numbering.NewService(seqRepo)

	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	receiptUC := receipt.NewUseCase(txRunner, engine, receiptRepo, productRepo, warehouseRepo, numberingSvc)
	deliveryUC := delivery.NewUseCase(txRunner, engine, deliveryRepo, productRepo, warehouseRepo, numberingSvc, log.Zerolog())
	requisitionUC := requisition.NewUseCase(txRunner, requisitionRepo, productRepo, warehouseRepo, numberingSvc)
	adjustmentUC := adjustment.NewUseCase(txRunner, engine, adjustmentRepo, productRepo, warehouseRepo, numberingSvc)
	stockUC := stock.NewUseCase(levelRepo, movementRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en http://localhost:<port>/docs. El spec va embebido en el
	// binario (FileContent): sin él, el middleware exige el archivo en disco
	// y entra en pánico al arrancar desde otro directorio.
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: docs.SwaggerJSON,
		FilePath:    "docs/swagger.json",
		Path:        "docs",
		Title:       "StockMaster API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		WarehouseUC:   warehouseUC,
		ProductUC:     productUC,
		ReceiptUC:     receiptUC,
		DeliveryUC:    deliveryUC,
		RequisitionUC: requisitionUC,
		AdjustmentUC:  adjustmentUC,
		StockUC:       stockUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
		MetricsPath:   metricsPath,
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
