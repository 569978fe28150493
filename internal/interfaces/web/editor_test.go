package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-manager/internal/application/dto"
	"github.com/jhoicas/invoice-manager/internal/domain/entity"
)

func ptr[T any](v T) *T { return &v }

func sampleInvoice() *entity.Invoice {
	return &entity.Invoice{
		ID:       "inv-1",
		FileID:   "file-1",
		FileName: "acme.pdf",
		Vendor:   entity.Vendor{Name: "ACME Corporation", TaxID: ptr("12-3456789")},
		Invoice: entity.InvoiceDetails{
			Number:   "INV-2024-001",
			Date:     "2024-01-15",
			Currency: ptr("USD"),
			Total:    ptr(1085.0),
			LineItems: []entity.LineItem{
				{Description: "Professional Services", UnitPrice: 100, Quantity: 10, Total: 1000},
			},
		},
	}
}

func TestEditBuffer_RecalculaTotal(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		value     string
		wantTotal string
	}{
		{"cantidad", FieldQuantity, "3", "300"},
		{"precio unitario", FieldUnitPrice, "19.99", "199.9"},
		{"descripción no recalcula", FieldDescription, "Consulting", "1000"},
		{"cantidad no numérica conserva total", FieldQuantity, "abc", "1000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewEditBuffer(sampleInvoice())
			require.False(t, b.Dirty)

			require.NoError(t, b.SetLineItem(0, tt.field, tt.value))
			assert.Equal(t, tt.wantTotal, b.LineItems[0].Total)
			assert.True(t, b.Dirty)
		})
	}
}

func TestEditBuffer_RecalculoDecimal(t *testing.T) {
	b := NewEditBuffer(sampleInvoice())
	require.NoError(t, b.SetLineItem(0, FieldUnitPrice, "0.1"))
	require.NoError(t, b.SetLineItem(0, FieldQuantity, "3"))
	assert.Equal(t, "0.3", b.LineItems[0].Total)
}

func TestEditBuffer_LineasFueraDeRango(t *testing.T) {
	b := NewEditBuffer(sampleInvoice())
	assert.Error(t, b.SetLineItem(5, FieldQuantity, "1"))
	assert.Error(t, b.SetLineItem(0, "color", "red"))

	b.RemoveLineItem(7)
	assert.Len(t, b.LineItems, 1)
	assert.False(t, b.Dirty)
}

func TestEditBuffer_AgregarYQuitar(t *testing.T) {
	b := NewEditBuffer(sampleInvoice())
	b.AddLineItem()
	require.Len(t, b.LineItems, 2)
	assert.True(t, b.Dirty)

	b.RemoveLineItem(0)
	require.Len(t, b.LineItems, 1)
	assert.Equal(t, "", b.LineItems[0].Description)
}

func TestEditBuffer_ApplyExtraction(t *testing.T) {
	b := NewEditBuffer(sampleInvoice())
	b.ApplyExtraction(&dto.ExtractedInvoice{
		Vendor: entity.Vendor{Name: "TechCorp Industries"},
		Invoice: entity.InvoiceDetails{
			Number:    "TC-2024-005",
			LineItems: []entity.LineItem{{Description: "Software License", UnitPrice: 500, Quantity: 5, Total: 2500}},
		},
	})

	assert.True(t, b.Dirty)
	assert.Equal(t, "TechCorp Industries", b.VendorName)
	assert.Equal(t, "", b.VendorTaxID)
	assert.Equal(t, "TC-2024-005", b.Number)
	assert.Equal(t, "file-1", b.FileID, "la referencia al PDF no cambia")
	require.Len(t, b.LineItems, 1)
	assert.Equal(t, "2500", b.LineItems[0].Total)
}

func TestEditBuffer_ToUpdateRequest(t *testing.T) {
	b := NewEditBuffer(sampleInvoice())
	require.NoError(t, b.SetLineItem(0, FieldQuantity, "2"))

	req, err := b.ToUpdateRequest()
	require.NoError(t, err)
	require.NotNil(t, req.Vendor)
	require.NotNil(t, req.Invoice)
	assert.Equal(t, "ACME Corporation", req.Vendor.Name)
	assert.Nil(t, req.Vendor.Address, "vacío se omite")
	assert.Equal(t, "12-3456789", *req.Vendor.TaxID)
	assert.Nil(t, req.Invoice.Subtotal)
	assert.Equal(t, 1085.0, *req.Invoice.Total)
	assert.Equal(t, []entity.LineItem{
		{Description: "Professional Services", UnitPrice: 100, Quantity: 2, Total: 200},
	}, req.Invoice.LineItems)
	assert.Equal(t, "acme.pdf", *req.FileName)

	b.Total = "mil"
	_, err = b.ToUpdateRequest()
	assert.ErrorContains(t, err, "invalid number in total")
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "-", FormatMoney(nil, ptr("USD")))

	usd := FormatMoney(ptr(1085.0), ptr("usd"))
	assert.Contains(t, usd, "$")
	assert.Contains(t, usd, "085.00")

	plain := FormatMoney(ptr(12.5), nil)
	assert.Contains(t, plain, "12.50")
	assert.NotContains(t, plain, "$")

	assert.Contains(t, FormatMoney(ptr(3.0), ptr("XYZ1")), "3.00")
}
