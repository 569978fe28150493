package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/invoice-manager/internal/domain/entity"
)

func TestXLSXExporter_Export(t *testing.T) {
	total := 1085.0
	currency := "USD"
	invoices := []*entity.Invoice{
		{
			ID:       "a1",
			FileID:   "f1",
			FileName: "acme.pdf",
			Vendor:   entity.Vendor{Name: "ACME Corporation"},
			Invoice: entity.InvoiceDetails{
				Number:   "INV-2024-001",
				Date:     "2024-01-15",
				Currency: &currency,
				Total:    &total,
				LineItems: []entity.LineItem{
					{Description: "Professional Services", UnitPrice: 100, Quantity: 10, Total: 1000},
					{Description: "Travel", UnitPrice: 85, Quantity: 1, Total: 85},
				},
			},
			CreatedAt: time.Date(2024, 1, 16, 9, 30, 0, 0, time.UTC),
		},
		{
			ID:        "b2",
			FileName:  "vacia.pdf",
			Vendor:    entity.Vendor{Name: "Unknown Vendor"},
			CreatedAt: time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC),
		},
	}

	e := NewXLSXExporter()
	data, err := e.Export(invoices)
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", e.FileExtension())

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetInvoices, SheetLineItems}, f.GetSheetList())

	rows, err := f.GetRows(SheetInvoices)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Vendor", rows[0][3])
	assert.Equal(t, "ACME Corporation", rows[1][3])
	assert.Equal(t, "INV-2024-001", rows[1][6])
	assert.Equal(t, "1085", rows[1][11])
	assert.Equal(t, "2024-01-16 09:30:00", rows[1][14])

	// Campos ausentes quedan como celdas vacías.
	v, err := f.GetCellValue(SheetInvoices, "I3")
	require.NoError(t, err)
	assert.Equal(t, "", v)

	items, err := f.GetRows(SheetLineItems)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Travel", items[2][3])
	assert.Equal(t, "2", items[2][2])
}

func TestXLSXExporter_Vacio(t *testing.T) {
	data, err := NewXLSXExporter().Export(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetInvoices)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
