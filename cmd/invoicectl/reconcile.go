package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/jhoicas/invoice-manager/internal/application/usecase"
	"github.com/jhoicas/invoice-manager/internal/infrastructure/mongodb"
)

func reconcileAction(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(c)

	client, err := mongodb.Connect(c.Context, cfg.Mongo)
	if err != nil {
		return fmt.Errorf("conexión a MongoDB: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	files, err := mongodb.NewGridFSStore(client)
	if err != nil {
		return err
	}
	uc := usecase.NewReconcileUseCase(mongodb.NewInvoiceRepository(client), files, log)

	report, err := uc.Run(c.Context, usecase.ReconcileOptions{
		Grace:  c.Duration("grace"),
		DryRun: c.Bool("dry-run"),
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return err
	}
	if len(report.Failed) > 0 {
		return cli.Exit(fmt.Sprintf("%d archivos no se pudieron borrar", len(report.Failed)), 1)
	}
	return nil
}
