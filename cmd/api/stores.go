package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/invoice-manager/internal/domain/repository"
	"github.com/jhoicas/invoice-manager/internal/infrastructure/memory"
	"github.com/jhoicas/invoice-manager/internal/infrastructure/mongodb"
	"github.com/jhoicas/invoice-manager/pkg/config"
	"github.com/jhoicas/invoice-manager/pkg/logger"
)

// stores repositorio de facturas y almacén de archivos del driver configurado.
type stores struct {
	invoices repository.InvoiceRepository
	files    repository.FileStore
	release  func()
}

// openStores abre el backend de persistencia. Ante un error no deja conexiones abiertas;
// si no hay error, el llamador debe invocar release al terminar.
func openStores(ctx context.Context, cfg config.StoreConfig, mongoCfg config.MongoConfig, log *logger.Logger) (*stores, error) {
	if cfg.Driver == config.StoreDriverMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &stores{
			invoices: memory.NewInvoiceStore(),
			files:    memory.NewFileStore(),
			release:  func() {},
		}, nil
	}

	client, err := mongodb.Connect(ctx, mongoCfg)
	if err != nil {
		return nil, err
	}
	disconnect := func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Error().Err(err).Msg("desconexión de MongoDB")
		}
	}

	if err := client.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("no se pudieron crear los índices")
	}
	gridfs, err := mongodb.NewGridFSStore(client)
	if err != nil {
		disconnect()
		return nil, fmt.Errorf("bucket GridFS: %w", err)
	}
	return &stores{
		invoices: mongodb.NewInvoiceRepository(client),
		files:    gridfs,
		release:  disconnect,
	}, nil
}
