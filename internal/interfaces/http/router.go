package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-manager/internal/application/usecase"
	"github.com/jhoicas/invoice-manager/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	FileUC       *usecase.FileUseCase
	InvoiceUC    *usecase.InvoiceUseCase
	ExtractionUC *usecase.ExtractionUseCase
	ExportUC     *usecase.ExportUseCase // opcional
	Logger       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	app.Get("/health", Health)

	api := app.Group("/api")

	// Files
	files := api.Group("/files")
	fileHandler := NewFileHandler(deps.FileUC, log.Named("http.files"))
	files.Post("/upload", fileHandler.Upload)
	files.Get("/:fileId", fileHandler.Download)
	files.Delete("/:fileId", fileHandler.Delete)

	// Invoices. Las rutas fijas van antes de /:id.
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.ExportUC, log.Named("http.invoices"))
	aiHandler := NewAIHandler(deps.ExtractionUC, log.Named("http.extract"))
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Post("/extract", aiHandler.Extract)
	if deps.ExportUC != nil {
		invoices.Get("/export", invoiceHandler.Export)
	}
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
}
