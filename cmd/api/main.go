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

	"github.com/jhoicas/Logistica-api/internal/application/auth"
	"github.com/jhoicas/Logistica-api/internal/application/catalog"
	"github.com/jhoicas/Logistica-api/internal/application/document"
	"github.com/jhoicas/Logistica-api/internal/application/jobs"
	"github.com/jhoicas/Logistica-api/internal/application/scan"
	"github.com/jhoicas/Logistica-api/internal/application/sequence"
	infrapdf "github.com/jhoicas/Logistica-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Logistica-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Logistica-api/internal/infrastructure/upload"
	httpRouter "github.com/jhoicas/Logistica-api/internal/interfaces/http"
	"github.com/jhoicas/Logistica-api/pkg/config"
	"github.com/jhoicas/Logistica-api/pkg/logger"
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

	if err := postgres.RunMigrations(cfg.DB, cfg.DB.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("migraciones de base de datos")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (fuera de transacción, lado de lectura).
	unitRepo := postgres.NewUnitRepository(pool)
	palletRepo := postgres.NewPalletRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	docRepo := postgres.NewMovementDocumentRepository(pool)
	lineRepo := postgres.NewMovementLineRepository(pool)
	instructionRepo := postgres.NewInstructionLineRepository(pool)
	planRepo := postgres.NewGapPlanRepository(pool)
	attachmentRepo := postgres.NewAttachmentRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	// Núcleo: registro de códigos + motor de reglas.
	registry := scan.NewRegistry(unitRepo)
	validator := scan.NewValidator(lineRepo, warehouseRepo, productRepo, instructionRepo)

	scanUC := scan.NewProcessScanUseCase(
		postgres.NewScanTxRunner(pool), registry, validator, palletRepo,
	)
	aggUC := document.NewAggregatorUseCase(
		postgres.NewDocumentTxRunner(pool), registry, validator,
		docRepo, lineRepo, unitRepo, palletRepo, warehouseRepo,
	)
	sequenceUC := sequence.NewGapUseCase(
		postgres.NewSequenceTxRunner(pool), planRepo, registry,
	)
	pdfUC := document.NewPDFUseCase(
		docRepo, lineRepo, unitRepo, warehouseRepo, infrapdf.NewMarotoPDFGenerator(),
	)
	catalogUC := catalog.NewCatalogUseCase(warehouseRepo, productRepo)
	authUC := auth.NewAuthUseCase(userRepo, warehouseRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Job de reintentos de subida de fotos, con ciclo de vida propio.
	var photoUploader *jobs.PhotoUploader
	if cfg.Sync.PhotoUploadURL != "" {
		photoUploader = jobs.NewPhotoUploader(
			attachmentRepo,
			upload.NewHTTPUploader(cfg.Sync.PhotoUploadURL),
			time.Duration(cfg.Sync.PhotoPollSeconds)*time.Second,
			log.Component("photo_uploader"),
		)
		photoUploader.Start()
		log.Info().Str("endpoint", cfg.Sync.PhotoUploadURL).Msg("job de fotos iniciado")
	}

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
		Title:    "Logística API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CatalogUC:  catalogUC,
		ScanUC:     scanUC,
		AggUC:      aggUC,
		PDFUC:      pdfUC,
		SequenceUC: sequenceUC,
		JWTSecret:  cfg.JWT.Secret,
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

	if photoUploader != nil {
		photoUploader.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
