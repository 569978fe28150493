// invoicectl es la herramienta de operación del gestor de facturas.
//
// Uso:
//
//	invoicectl seed --api http://localhost:3001 --count 10
//	invoicectl reconcile --dry-run --grace 1h
//	invoicectl sample --out sample.pdf
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/jhoicas/invoice-manager/pkg/config"
	"github.com/jhoicas/invoice-manager/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "invoicectl",
		Usage: "operaciones sobre el gestor de facturas",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info", EnvVars: []string{"LOG_LEVEL"}},
		},
		Commands: []*cli.Command{
			{
				Name:  "seed",
				Usage: "genera PDFs de muestra, los sube y crea sus facturas vía la API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "api", Value: "http://localhost:3001", EnvVars: []string{"API_URL"}, Usage: "URL base de la API"},
					&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Value: 10, Usage: "número de facturas"},
				},
				Action: seedAction,
			},
			{
				Name:  "reconcile",
				Usage: "borra PDFs de GridFS que ninguna factura referencia",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "dry-run", Usage: "solo informar, no borrar"},
					&cli.DurationFlag{Name: "grace", Value: time.Hour, Usage: "ignorar archivos más nuevos que esto"},
				},
				Action: reconcileAction,
			},
			{
				Name:  "sample",
				Usage: "escribe un PDF de factura de muestra en disco",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "sample-invoice.pdf"},
					&cli.IntFlag{Name: "index", Value: 0, Usage: "variante de la muestra"},
				},
				Action: sampleAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "invoicectl: %v\n", err)
		os.Exit(1)
	}
}

// newLogger logger de consola para la CLI.
func newLogger(c *cli.Context) *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: c.String("log-level")})
}

// loadConfig carga la configuración compartida con la API.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	return cfg, nil
}
