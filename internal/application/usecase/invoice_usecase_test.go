package usecase

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-manager/internal/application/dto"
	"github.com/jhoicas/invoice-manager/internal/domain"
	"github.com/jhoicas/invoice-manager/internal/domain/entity"
	"github.com/jhoicas/invoice-manager/internal/infrastructure/memory"
	"github.com/jhoicas/invoice-manager/pkg/logger"
)

func newInvoiceUC(t *testing.T) (*InvoiceUseCase, *memory.InvoiceStore, *memory.FileStore) {
	t.Helper()
	repo := memory.NewInvoiceStore()
	files := memory.NewFileStore()
	return NewInvoiceUseCase(repo, files, logger.Nop()), repo, files
}

func TestInvoiceUseCase_ListPaginacion(t *testing.T) {
	uc, _, _ := newInvoiceUC(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		at := base.Add(time.Duration(i) * time.Second)
		uc.now = func() time.Time { return at }
		_, err := uc.Create(ctx, dto.CreateInvoiceRequest{
			FileName: fmt.Sprintf("f%02d.pdf", i),
			Vendor:   entity.Vendor{Name: "Vendor"},
		})
		require.NoError(t, err)
	}

	// Caso 1: valores por defecto.
	res, err := uc.List(ctx, dto.InvoiceSearchRequest{})
	require.NoError(t, err)
	assert.Len(t, res.Invoices, 10)
	assert.Equal(t, dto.Pagination{Page: 1, Limit: 10, Total: 25, Pages: 3}, res.Pagination)

	// Caso 2: página 3 trae los 5 restantes.
	res, err = uc.List(ctx, dto.InvoiceSearchRequest{PageRequest: dto.PageRequest{Page: 3, Limit: 10}})
	require.NoError(t, err)
	assert.Len(t, res.Invoices, 5)
	assert.Equal(t, "f00.pdf", res.Invoices[4].FileName)

	// Caso 3: página 4 vacía sin error.
	res, err = uc.List(ctx, dto.InvoiceSearchRequest{PageRequest: dto.PageRequest{Page: 4, Limit: 10}})
	require.NoError(t, err)
	assert.NotNil(t, res.Invoices)
	assert.Empty(t, res.Invoices)
	assert.EqualValues(t, 3, res.Pagination.Pages)

	// Caso 4: limit acotado a 100.
	res, err = uc.List(ctx, dto.InvoiceSearchRequest{PageRequest: dto.PageRequest{Page: 1, Limit: 1000}})
	require.NoError(t, err)
	assert.Equal(t, 100, res.Pagination.Limit)
	assert.EqualValues(t, 1, res.Pagination.Pages)
}

func TestInvoiceUseCase_CreateFijaCreatedAt(t *testing.T) {
	uc, _, _ := newInvoiceUC(t)
	fixed := time.Date(2024, 5, 6, 7, 8, 9, 123456789, time.UTC)
	uc.now = func() time.Time { return fixed }

	inv, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{Vendor: entity.Vendor{Name: "A"}})
	require.NoError(t, err)
	assert.NotEmpty(t, inv.ID)
	assert.Equal(t, fixed.Truncate(time.Millisecond), inv.CreatedAt)
	assert.NotNil(t, inv.Invoice.LineItems)
	assert.Nil(t, inv.UpdatedAt)
}

func TestInvoiceUseCase_UpdateVacioNoModifica(t *testing.T) {
	uc, _, _ := newInvoiceUC(t)
	ctx := context.Background()
	inv, err := uc.Create(ctx, dto.CreateInvoiceRequest{FileName: "a.pdf"})
	require.NoError(t, err)

	got, err := uc.Update(ctx, inv.ID, dto.UpdateInvoiceRequest{})
	require.NoError(t, err)
	assert.Nil(t, got.UpdatedAt)

	_, err = uc.Update(ctx, "no-existe", dto.UpdateInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceUseCase_DeleteBorraArchivo(t *testing.T) {
	uc, _, files := newInvoiceUC(t)
	ctx := context.Background()
	fileID, err := files.Upload(ctx, "a.pdf", entity.FileMetadata{}, bytes.NewReader([]byte("%PDF")))
	require.NoError(t, err)
	inv, err := uc.Create(ctx, dto.CreateInvoiceRequest{FileID: fileID, FileName: "a.pdf"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, inv.ID))

	_, err = uc.Get(ctx, inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = files.Stat(ctx, fileID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Segunda vez: 404.
	assert.ErrorIs(t, uc.Delete(ctx, inv.ID), domain.ErrNotFound)
}

func TestInvoiceUseCase_DeleteFalloArchivoNoSePropaga(t *testing.T) {
	repo := memory.NewInvoiceStore()
	files := &failingDeleteStore{FileStore: memory.NewFileStore()}
	uc := NewInvoiceUseCase(repo, files, logger.Nop())
	ctx := context.Background()

	inv, err := uc.Create(ctx, dto.CreateInvoiceRequest{FileID: "f-1"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, inv.ID))
	assert.Equal(t, 1, files.calls)
	_, err = uc.Get(ctx, inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceUseCase_All(t *testing.T) {
	uc, _, _ := newInvoiceUC(t)
	ctx := context.Background()
	for i := 0; i < 230; i++ {
		name := "otro"
		if i%2 == 0 {
			name = "ACME"
		}
		_, err := uc.Create(ctx, dto.CreateInvoiceRequest{Vendor: entity.Vendor{Name: name}})
		require.NoError(t, err)
	}

	all, err := uc.All(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 230)

	acme, err := uc.All(ctx, "acme")
	require.NoError(t, err)
	assert.Len(t, acme, 115)
}
