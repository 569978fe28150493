package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/invoice-manager/internal/interfaces/web"
	"github.com/jhoicas/invoice-manager/pkg/apiclient"
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
		Str("api", cfg.Web.APIURL).
		Str("public_api", cfg.Web.PublicAPIURL).
		Msg("iniciando cliente web")

	app := web.NewApp(web.Config{
		AppName:      cfg.App.Name + "-web",
		PublicAPIURL: cfg.Web.PublicAPIURL,
		MaxBytes:     cfg.Upload.MaxBytes,
	}, apiclient.New(cfg.Web.APIURL), log)

	go func() {
		if err := app.Listen(cfg.Web.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor web finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor web...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor web")
	}
}
