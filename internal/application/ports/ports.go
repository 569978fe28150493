package ports

import (
	"context"
	"io"

	"github.com/jhoicas/invoice-manager/internal/application/dto"
	"github.com/jhoicas/invoice-manager/internal/domain/entity"
)

// InvoiceExtractor define el puerto de salida para los servicios de extracción con IA.
// Cada proveedor (Gemini, Groq, Claude, mock) implementa esta interfaz; agregar uno nuevo
// no requiere cambios en los llamadores.
type InvoiceExtractor interface {
	// Name nombre con el que se selecciona el proveedor (p. ej. "gemini").
	Name() string
	// ExtractInvoice convierte texto libre en campos estructurados de factura.
	ExtractInvoice(ctx context.Context, text string) (*dto.ExtractedInvoice, error)
}

// ExtractorResolver resuelve un proveedor por nombre.
// primary es el proveedor a invocar (el simulado si no hay credenciales o estamos en modo desarrollo);
// fallback devuelve los datos simulados de ese nombre y nunca falla.
type ExtractorResolver interface {
	Resolve(name string) (primary InvoiceExtractor, fallback InvoiceExtractor)
}

// PDFInspector obtiene metadatos de un PDF (número de páginas).
// El llamador debe volver el lector al inicio después de usarlo.
type PDFInspector interface {
	PageCount(rs io.ReadSeeker) (int, error)
}

// InvoiceExporter serializa un conjunto de facturas a un formato descargable.
type InvoiceExporter interface {
	Export(invoices []*entity.Invoice) ([]byte, error)
	ContentType() string
	FileExtension() string
}
