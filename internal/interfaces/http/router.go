package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/feriavalle/feriavalle/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC *usecase.ProductUseCase
	SaleUC    *usecase.SaleUseCase
	BackupUC  *usecase.BackupUseCase
	UsageUC   *usecase.UsageUseCase
	ReportUC  *usecase.ReportUseCase
}

// Router registra las rutas de la API local. Todo es público: la app corre
// en el dispositivo del usuario y escucha solo en loopback.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo de productos
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Libro de ventas
	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Delete("/:id", saleHandler.Delete)

	// Respaldos y almacenamiento
	backupHandler := NewBackupHandler(deps.BackupUC, deps.UsageUC)
	backups := api.Group("/backups")
	backups.Post("/", backupHandler.Create)
	backups.Get("/download", backupHandler.Download)
	backups.Get("/last", backupHandler.Last)
	backups.Post("/restore", backupHandler.Restore)
	backups.Post("/restore/auto", backupHandler.RestoreAutomatic)
	api.Get("/storage/usage", backupHandler.Usage)

	// Reportes
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/sales.pdf", reportHandler.SalesPDF)
	reports.Get("/sales.csv", reportHandler.SalesCSV)
}
