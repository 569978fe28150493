package mongodb

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-manager/internal/domain"
	"github.com/jhoicas/invoice-manager/internal/domain/entity"
	"github.com/jhoicas/invoice-manager/internal/domain/repository"
	"github.com/jhoicas/invoice-manager/pkg/config"
)

// connectTest abre una base de datos temporal; se omite si MONGODB_TEST_URI no está definido.
func connectTest(t *testing.T) *Client {
	t.Helper()
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI no definido")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := config.MongoConfig{
		URI:                uri,
		Database:           fmt.Sprintf("invoice_manager_test_%d", time.Now().UnixNano()),
		InvoicesCollection: "invoices",
		FilesBucket:        "pdfs",
	}
	c, err := Connect(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, c.EnsureIndexes(ctx))
	t.Cleanup(func() {
		_ = c.Database().Drop(context.Background())
		_ = c.Disconnect(context.Background())
	})
	return c
}

func TestInvoiceRepo_Integracion(t *testing.T) {
	c := connectTest(t)
	repo := NewInvoiceRepository(c)
	ctx := context.Background()

	currency := "USD"
	total := 1085.0
	id, err := repo.Insert(ctx, &entity.Invoice{
		FileID:   "f1",
		FileName: "acme.pdf",
		Vendor:   entity.Vendor{Name: "ACME Corporation"},
		Invoice: entity.InvoiceDetails{
			Number:    "INV-2024-001",
			Date:      "2024-01-15",
			Currency:  &currency,
			Total:     &total,
			LineItems: []entity.LineItem{{Description: "Servicios", UnitPrice: 10, Quantity: 100, Total: 1000}},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "USD", *got.Invoice.Currency)
	assert.Nil(t, got.Invoice.Subtotal)
	assert.Nil(t, got.UpdatedAt)

	list, n, err := repo.Find(ctx, repository.InvoiceFilter{Query: "acme"}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.Len(t, list, 1)

	name := "renombrada.pdf"
	updated, err := repo.Update(ctx, id, entity.InvoicePatch{FileName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.FileName)
	assert.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, "INV-2024-001", updated.Invoice.Number)

	refs, err := repo.ReferencedFileIDs(ctx)
	require.NoError(t, err)
	assert.Contains(t, refs, "f1")

	require.NoError(t, repo.Delete(ctx, id))
	assert.ErrorIs(t, repo.Delete(ctx, id), domain.ErrNotFound)
	_, err = repo.FindByID(ctx, "mal-formado")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGridFSStore_Integracion(t *testing.T) {
	c := connectTest(t)
	store, err := NewGridFSStore(c)
	require.NoError(t, err)
	ctx := context.Background()

	payload := []byte("%PDF-1.4 prueba")
	id, err := store.Upload(ctx, "a.pdf", entity.FileMetadata{
		ContentType:  entity.PDFContentType,
		OriginalName: "a.pdf",
		Size:         int64(len(payload)),
		PageCount:    1,
	}, bytes.NewReader(payload))
	require.NoError(t, err)

	info, err := store.Stat(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, len(payload), info.Length)
	assert.Equal(t, entity.PDFContentType, info.Metadata.ContentType)
	assert.Equal(t, 1, info.Metadata.PageCount)

	rc, err := store.Open(ctx, id)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	_ = rc.Close()
	assert.Equal(t, payload, got)

	files, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, files, 1)

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Stat(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, id), domain.ErrNotFound)
}
