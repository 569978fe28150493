package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/invoice-manager/internal/application/ports"
)

// ExportFile archivo generado listo para descargar.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExportUseCase exporta todas las facturas que coinciden con la búsqueda.
type ExportUseCase struct {
	invoices *InvoiceUseCase
	exporter ports.InvoiceExporter
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(invoices *InvoiceUseCase, exporter ports.InvoiceExporter) *ExportUseCase {
	return &ExportUseCase{invoices: invoices, exporter: exporter}
}

// Export recorre todas las páginas y serializa el resultado.
func (uc *ExportUseCase) Export(ctx context.Context, query string) (*ExportFile, error) {
	items, err := uc.invoices.All(ctx, query)
	if err != nil {
		return nil, err
	}
	data, err := uc.exporter.Export(items)
	if err != nil {
		return nil, fmt.Errorf("exportar facturas: %w", err)
	}
	return &ExportFile{
		Name:        fmt.Sprintf("invoices-%s%s", time.Now().UTC().Format("20060102-150405"), uc.exporter.FileExtension()),
		ContentType: uc.exporter.ContentType(),
		Data:        data,
	}, nil
}
