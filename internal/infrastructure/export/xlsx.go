package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/invoice-manager/internal/application/ports"
	"github.com/jhoicas/invoice-manager/internal/domain/entity"
)

var _ ports.InvoiceExporter = (*XLSXExporter)(nil)

// Hojas del libro exportado.
const (
	SheetInvoices  = "Invoices"
	SheetLineItems = "LineItems"
)

// XLSXExporter genera un libro Excel con una hoja de facturas y otra de líneas.
type XLSXExporter struct{}

// NewXLSXExporter construye el exportador.
func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

// ContentType tipo MIME del libro.
func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FileExtension extensión del archivo descargado.
func (e *XLSXExporter) FileExtension() string { return ".xlsx" }

var invoiceHeaders = []string{
	"ID", "File ID", "File Name", "Vendor", "Vendor Address", "Vendor Tax ID",
	"Number", "Date", "Currency", "Subtotal", "Tax %", "Total", "PO Number", "PO Date",
	"Created At", "Updated At",
}

var lineItemHeaders = []string{"Invoice ID", "Invoice Number", "Line", "Description", "Unit Price", "Quantity", "Total"}

// Export escribe las facturas en orden y devuelve los bytes del libro.
func (e *XLSXExporter) Export(invoices []*entity.Invoice) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// La hoja por defecto se renombra para no dejar una hoja vacía.
	if err := f.SetSheetName(f.GetSheetName(0), SheetInvoices); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(SheetLineItems); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}

	writeHeaders(f, SheetInvoices, invoiceHeaders)
	writeHeaders(f, SheetLineItems, lineItemHeaders)

	itemRow := 2
	for i, inv := range invoices {
		row := i + 2
		d := inv.Invoice
		var updated any
		if inv.UpdatedAt != nil {
			updated = inv.UpdatedAt.UTC().Format("2006-01-02 15:04:05")
		}
		writeRow(f, SheetInvoices, row, []any{
			inv.ID, inv.FileID, inv.FileName, inv.Vendor.Name, str(inv.Vendor.Address), str(inv.Vendor.TaxID),
			d.Number, d.Date, str(d.Currency), num(d.Subtotal), num(d.TaxPercent), num(d.Total), str(d.PONumber), str(d.PODate),
			inv.CreatedAt.UTC().Format("2006-01-02 15:04:05"), updated,
		})
		for n, it := range d.LineItems {
			writeRow(f, SheetLineItems, itemRow, []any{
				inv.ID, d.Number, n + 1, it.Description, it.UnitPrice, it.Quantity, it.Total,
			})
			itemRow++
		}
	}

	_ = f.SetColWidth(SheetInvoices, "A", "C", 26)
	_ = f.SetColWidth(SheetInvoices, "D", "F", 24)
	_ = f.SetColWidth(SheetInvoices, "O", "P", 20)
	_ = f.SetColWidth(SheetLineItems, "D", "D", 40)
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeaders(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, v := range values {
		if v == nil {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

// str y num devuelven nil para campos ausentes (celda vacía).
func str(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func num(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
