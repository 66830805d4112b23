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

	"github.com/feriavalle/feriavalle/internal/application/usecase"
	infracsv "github.com/feriavalle/feriavalle/internal/infrastructure/csv"
	infrapdf "github.com/feriavalle/feriavalle/internal/infrastructure/pdf"
	"github.com/feriavalle/feriavalle/internal/infrastructure/sqlite"
	"github.com/feriavalle/feriavalle/internal/infrastructure/vault"
	"github.com/feriavalle/feriavalle/internal/store"
	httpRouter "github.com/feriavalle/feriavalle/internal/interfaces/http"
	"github.com/feriavalle/feriavalle/pkg/config"
	"github.com/feriavalle/feriavalle/pkg/logger"
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
		Str("data_dir", cfg.Storage.DataDir).
		Msg("iniciando aplicación")

	db, err := sqlite.Open(cfg.Storage.DBPath())
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento local")
	}
	defer db.Close()

	entityStore, err := store.New(db, log)
	if err != nil {
		log.Fatal().Err(err).Msg("rehidratar estado")
	}

	backupVault := vault.New(cfg.Storage.DataDir)
	productUC := usecase.NewProductUseCase(entityStore)
	saleUC := usecase.NewSaleUseCase(entityStore)
	backupUC := usecase.NewBackupUseCase(entityStore, backupVault, db, log)
	usageUC := usecase.NewUsageUseCase(db, cfg.Storage.LimitBytes)
	reportUC := usecase.NewReportUseCase(entityStore, infrapdf.NewMarotoReportGenerator(), infracsv.NewExporter())

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
		Title:    "FeriaValle API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC: productUC,
		SaleUC:    saleUC,
		BackupUC:  backupUC,
		UsageUC:   usageUC,
		ReportUC:  reportUC,
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
