package web

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-manager/internal/application/dto"
	"github.com/jhoicas/invoice-manager/internal/domain/entity"
)

// Campos editables de una línea de detalle.
const (
	FieldDescription = "description"
	FieldUnitPrice   = "unitPrice"
	FieldQuantity    = "quantity"
	FieldTotal       = "total"
)

// LineItemRow línea de detalle tal como se edita en el formulario (texto libre).
type LineItemRow struct {
	Description string
	UnitPrice   string
	Quantity    string
	Total       string
}

// EditBuffer estado del editor de una factura. Vive en la página: se reconstruye desde el
// formulario en cada POST y solo se persiste con Save.
type EditBuffer struct {
	ID       string
	FileID   string
	FileName string

	VendorName    string
	VendorAddress string
	VendorTaxID   string

	Number     string
	Date       string
	Currency   string
	Subtotal   string
	TaxPercent string
	Total      string
	PONumber   string
	PODate     string

	LineItems []LineItemRow

	// Dirty hay cambios sin guardar.
	Dirty bool
}

// NewEditBuffer carga el buffer desde una factura guardada.
func NewEditBuffer(inv *entity.Invoice) *EditBuffer {
	b := &EditBuffer{
		ID:       inv.ID,
		FileID:   inv.FileID,
		FileName: inv.FileName,
	}
	b.applyVendor(inv.Vendor)
	b.applyDetails(inv.Invoice)
	return b
}

func (b *EditBuffer) applyVendor(v entity.Vendor) {
	b.VendorName = v.Name
	b.VendorAddress = str(v.Address)
	b.VendorTaxID = str(v.TaxID)
}

func (b *EditBuffer) applyDetails(d entity.InvoiceDetails) {
	b.Number = d.Number
	b.Date = d.Date
	b.Currency = str(d.Currency)
	b.Subtotal = num(d.Subtotal)
	b.TaxPercent = num(d.TaxPercent)
	b.Total = num(d.Total)
	b.PONumber = str(d.PONumber)
	b.PODate = str(d.PODate)
	b.LineItems = make([]LineItemRow, 0, len(d.LineItems))
	for _, it := range d.LineItems {
		b.LineItems = append(b.LineItems, LineItemRow{
			Description: it.Description,
			UnitPrice:   formatFloat(it.UnitPrice),
			Quantity:    formatFloat(it.Quantity),
			Total:       formatFloat(it.Total),
		})
	}
}

// ApplyExtraction sobrescribe proveedor y cabecera con el resultado de la IA. No guarda.
func (b *EditBuffer) ApplyExtraction(x *dto.ExtractedInvoice) {
	if x == nil {
		return
	}
	b.applyVendor(x.Vendor)
	b.applyDetails(x.Invoice)
	b.Dirty = true
}

// AddLineItem agrega una línea vacía.
func (b *EditBuffer) AddLineItem() {
	b.LineItems = append(b.LineItems, LineItemRow{UnitPrice: "0", Quantity: "1", Total: "0"})
	b.Dirty = true
}

// RemoveLineItem quita la línea i. Índices fuera de rango se ignoran.
func (b *EditBuffer) RemoveLineItem(i int) {
	if i < 0 || i >= len(b.LineItems) {
		return
	}
	b.LineItems = append(b.LineItems[:i], b.LineItems[i+1:]...)
	b.Dirty = true
}

// SetLineItem cambia un campo de la línea i. Cambiar cantidad o precio unitario recalcula
// total = unitPrice * quantity; la descripción no toca el total.
func (b *EditBuffer) SetLineItem(i int, field, value string) error {
	if i < 0 || i >= len(b.LineItems) {
		return fmt.Errorf("línea %d fuera de rango", i)
	}
	row := &b.LineItems[i]
	switch field {
	case FieldDescription:
		row.Description = value
	case FieldUnitPrice:
		row.UnitPrice = value
		b.recompute(row)
	case FieldQuantity:
		row.Quantity = value
		b.recompute(row)
	case FieldTotal:
		row.Total = value
	default:
		return fmt.Errorf("campo desconocido %q", field)
	}
	b.Dirty = true
	return nil
}

// recompute no toca el total si alguno de los factores no es numérico.
func (b *EditBuffer) recompute(row *LineItemRow) {
	price, err := parseDecimal(row.UnitPrice)
	if err != nil {
		return
	}
	qty, err := parseDecimal(row.Quantity)
	if err != nil {
		return
	}
	row.Total = price.Mul(qty).Round(2).String()
}

// ToUpdateRequest convierte el buffer al body de PUT /api/invoices/:id.
func (b *EditBuffer) ToUpdateRequest() (dto.UpdateInvoiceRequest, error) {
	vendor := entity.Vendor{
		Name:    strings.TrimSpace(b.VendorName),
		Address: optStr(b.VendorAddress),
		TaxID:   optStr(b.VendorTaxID),
	}

	details := entity.InvoiceDetails{
		Number:    strings.TrimSpace(b.Number),
		Date:      strings.TrimSpace(b.Date),
		Currency:  optStr(b.Currency),
		PONumber:  optStr(b.PONumber),
		PODate:    optStr(b.PODate),
		LineItems: make([]entity.LineItem, 0, len(b.LineItems)),
	}
	var err error
	if details.Subtotal, err = optFloat("subtotal", b.Subtotal); err != nil {
		return dto.UpdateInvoiceRequest{}, err
	}
	if details.TaxPercent, err = optFloat("tax %", b.TaxPercent); err != nil {
		return dto.UpdateInvoiceRequest{}, err
	}
	if details.Total, err = optFloat("total", b.Total); err != nil {
		return dto.UpdateInvoiceRequest{}, err
	}

	for i, row := range b.LineItems {
		item := entity.LineItem{Description: strings.TrimSpace(row.Description)}
		if item.UnitPrice, err = reqFloat(fmt.Sprintf("line %d unit price", i+1), row.UnitPrice); err != nil {
			return dto.UpdateInvoiceRequest{}, err
		}
		if item.Quantity, err = reqFloat(fmt.Sprintf("line %d quantity", i+1), row.Quantity); err != nil {
			return dto.UpdateInvoiceRequest{}, err
		}
		if item.Total, err = reqFloat(fmt.Sprintf("line %d total", i+1), row.Total); err != nil {
			return dto.UpdateInvoiceRequest{}, err
		}
		details.LineItems = append(details.LineItems, item)
	}

	fileID, fileName := b.FileID, b.FileName
	return dto.UpdateInvoiceRequest{
		FileID:   &fileID,
		FileName: &fileName,
		Vendor:   &vendor,
		Invoice:  &details,
	}, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func num(p *float64) string {
	if p == nil {
		return ""
	}
	return formatFloat(*p)
}

func formatFloat(v float64) string {
	return decimal.NewFromFloat(v).String()
}

func optStr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

func optFloat(label, s string) (*float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := reqFloat(label, s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func reqFloat(label, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number in %s: %q", label, s)
	}
	return v, nil
}
