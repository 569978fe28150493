package ai

import (
	"context"

	"github.com/jhoicas/invoice-manager/internal/application/dto"
	"github.com/jhoicas/invoice-manager/internal/application/ports"
	"github.com/jhoicas/invoice-manager/internal/domain/entity"
)

// Nombres de proveedor aceptados en POST /api/invoices/extract.
const (
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
	ProviderClaude = "claude"
)

var _ ports.InvoiceExtractor = (*MockService)(nil)

// MockService devuelve datos fijos por nombre de proveedor sin llamar a la red.
type MockService struct {
	name string
}

// NewMockService construye el proveedor simulado para name.
// Un nombre desconocido usa los datos de gemini.
func NewMockService(name string) *MockService {
	return &MockService{name: name}
}

// Name nombre del proveedor al que sustituye.
func (m *MockService) Name() string { return m.name }

// ExtractInvoice ignora el texto y nunca falla.
func (m *MockService) ExtractInvoice(_ context.Context, _ string) (*dto.ExtractedInvoice, error) {
	return CannedInvoice(m.name), nil
}

// CannedInvoice datos simulados deterministas. Cada llamada devuelve una copia nueva.
func CannedInvoice(provider string) *dto.ExtractedInvoice {
	switch provider {
	case ProviderGroq:
		return canned(
			"TechCorp Industries", "456 Tech Ave, Silicon Valley, CA 94000", "98-7654321",
			"TC-2024-005", "2024-01-20", "USD", 2500, 10, 2750, "PO-2024-005", "2024-01-18",
			entity.LineItem{Description: "Software License", UnitPrice: 500, Quantity: 5, Total: 2500},
		)
	case ProviderClaude:
		return canned(
			"Northwind Supplies", "789 Harbor Rd, Seattle, WA 98101", "45-6789012",
			"NW-2024-010", "2024-02-05", "USD", 640, 7.5, 688, "PO-2024-010", "2024-02-01",
			entity.LineItem{Description: "Office Chairs", UnitPrice: 160, Quantity: 4, Total: 640},
		)
	default:
		return canned(
			"ACME Corporation", "123 Business St, City, State 12345", "12-3456789",
			"INV-2024-001", "2024-01-15", "USD", 1000, 8.5, 1085, "PO-2024-001", "2024-01-10",
			entity.LineItem{Description: "Professional Services", UnitPrice: 100, Quantity: 10, Total: 1000},
		)
	}
}

func canned(name, address, taxID, number, date, currency string, subtotal, taxPercent, total float64, poNumber, poDate string, items ...entity.LineItem) *dto.ExtractedInvoice {
	return &dto.ExtractedInvoice{
		Vendor: entity.Vendor{Name: name, Address: &address, TaxID: &taxID},
		Invoice: entity.InvoiceDetails{
			Number:     number,
			Date:       date,
			Currency:   &currency,
			Subtotal:   &subtotal,
			TaxPercent: &taxPercent,
			Total:      &total,
			PONumber:   &poNumber,
			PODate:     &poDate,
			LineItems:  append([]entity.LineItem(nil), items...),
		},
	}
}
