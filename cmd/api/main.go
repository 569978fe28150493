package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/invoice-manager/internal/application/usecase"
	infraai "github.com/jhoicas/invoice-manager/internal/infrastructure/ai"
	"github.com/jhoicas/invoice-manager/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/invoice-manager/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/invoice-manager/internal/interfaces/http"
	"github.com/jhoicas/invoice-manager/pkg/config"
	"github.com/jhoicas/invoice-manager/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	st, err := openStores(ctx, cfg.Store, cfg.Mongo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer st.release()

	// En desarrollo la extracción siempre usa los datos simulados.
	registry := infraai.NewRegistry(cfg.AI, cfg.App.IsDevelopment())
	if cfg.App.IsDevelopment() {
		log.Info().Msg("modo desarrollo: extracción IA simulada")
	}

	invoiceUC := usecase.NewInvoiceUseCase(st.invoices, st.files, log)
	fileUC := usecase.NewFileUseCase(st.files, infrapdf.NewInspector(), cfg.Upload.MaxBytes, log)
	extractionUC := usecase.NewExtractionUseCase(registry, log)
	exportUC := usecase.NewExportUseCase(invoiceUC, export.NewXLSXExporter())

	app := httpRouter.NewApp(httpRouter.ServerConfig{
		AppName:        cfg.App.Name,
		MaxUploadBytes: cfg.Upload.MaxBytes,
		SwaggerFile:    "./docs/swagger.json",
	}, httpRouter.RouterDeps{
		FileUC:       fileUC,
		InvoiceUC:    invoiceUC,
		ExtractionUC: extractionUC,
		ExportUC:     exportUC,
		Logger:       log,
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
