package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-manager/internal/infrastructure/memory"
	"github.com/jhoicas/invoice-manager/pkg/config"
	"github.com/jhoicas/invoice-manager/pkg/logger"
)

func TestOpenStores_Memoria(t *testing.T) {
	s, err := openStores(context.Background(), config.StoreConfig{Driver: config.StoreDriverMemory}, config.MongoConfig{}, logger.Nop())
	require.NoError(t, err)
	defer s.release()

	assert.IsType(t, &memory.InvoiceStore{}, s.invoices)
	assert.IsType(t, &memory.FileStore{}, s.files)
}

func TestOpenStores_MongoURIInvalida(t *testing.T) {
	s, err := openStores(context.Background(), config.StoreConfig{Driver: config.StoreDriverMongo}, config.MongoConfig{URI: "not-a-mongo-uri"}, logger.Nop())
	require.Error(t, err)
	assert.Nil(t, s)
}
