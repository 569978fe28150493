package apiclient_test

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-manager/internal/application/dto"
	"github.com/jhoicas/invoice-manager/internal/application/usecase"
	"github.com/jhoicas/invoice-manager/internal/domain/entity"
	"github.com/jhoicas/invoice-manager/internal/infrastructure/ai"
	"github.com/jhoicas/invoice-manager/internal/infrastructure/memory"
	"github.com/jhoicas/invoice-manager/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/invoice-manager/internal/interfaces/http"
	"github.com/jhoicas/invoice-manager/pkg/apiclient"
	"github.com/jhoicas/invoice-manager/pkg/config"
	"github.com/jhoicas/invoice-manager/pkg/logger"
)

func newServer(t *testing.T) (*apiclient.Client, *memory.FileStore) {
	t.Helper()
	log := logger.Nop()
	invoices := memory.NewInvoiceStore()
	files := memory.NewFileStore()
	app := apphttp.NewApp(apphttp.ServerConfig{MaxUploadBytes: config.DefaultMaxUploadBytes}, apphttp.RouterDeps{
		FileUC:       usecase.NewFileUseCase(files, pdf.NewInspector(), config.DefaultMaxUploadBytes, log),
		InvoiceUC:    usecase.NewInvoiceUseCase(invoices, files, log),
		ExtractionUC: usecase.NewExtractionUseCase(ai.NewRegistry(config.AIConfig{}, true), log),
		Logger:       log,
	})
	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)
	return apiclient.New(srv.URL + "/"), files
}

func TestClient_FlujoCompleto(t *testing.T) {
	client, files := newServer(t)
	ctx := context.Background()

	data, err := pdf.NewMarotoPDFGenerator().GenerateInvoicePDF(ctx, pdf.SampleInvoice(1, time.Now()))
	require.NoError(t, err)

	up, err := client.UploadPDF(ctx, "sample.pdf", bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "sample.pdf", up.FileName)
	assert.Equal(t, int64(len(data)), up.Size)

	created, err := client.CreateInvoice(ctx, dto.CreateInvoiceRequest{
		FileID:   up.FileID,
		FileName: up.FileName,
		Vendor:   entity.Vendor{Name: "Unknown Vendor"},
		Invoice:  entity.InvoiceDetails{Date: "2024-01-15"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.NotNil(t, created.Invoice.LineItems)

	extracted, err := client.Extract(ctx, up.FileID, "groq")
	require.NoError(t, err)
	assert.Equal(t, "TechCorp Industries", extracted.Vendor.Name)

	updated, err := client.UpdateInvoice(ctx, created.ID, dto.UpdateInvoiceRequest{
		Vendor:  &extracted.Vendor,
		Invoice: &extracted.Invoice,
	})
	require.NoError(t, err)
	assert.Equal(t, "TC-2024-005", updated.Invoice.Number)

	list, err := client.ListInvoices(ctx, "techcorp", 1, 10)
	require.NoError(t, err)
	require.Len(t, list.Invoices, 1)
	assert.Equal(t, created.ID, list.Invoices[0].ID)

	require.NoError(t, client.DeleteInvoice(ctx, created.ID))

	_, err = client.GetInvoice(ctx, created.ID)
	assert.True(t, apiclient.IsNotFound(err))
	_, err = files.Stat(ctx, up.FileID)
	assert.Error(t, err)
}

func TestClient_Errores(t *testing.T) {
	client, _ := newServer(t)
	ctx := context.Background()

	_, err := client.GetInvoice(ctx, "no-existe")
	require.Error(t, err)
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "Invoice not found", apiErr.Message)

	_, err = client.Extract(ctx, "", "gemini")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)

	err = client.DeleteFile(ctx, "no-existe")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
}

func TestFileURL(t *testing.T) {
	assert.Equal(t, "http://api:3001/api/files/abc", apiclient.FileURL("http://api:3001/", "abc"))
}
