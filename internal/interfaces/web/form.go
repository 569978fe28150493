package web

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Nombres de campos del formulario del editor. Las líneas usan campos repetidos.
const (
	formFileID        = "fileId"
	formFileName      = "fileName"
	formDirty         = "dirty"
	formVendorName    = "vendor.name"
	formVendorAddress = "vendor.address"
	formVendorTaxID   = "vendor.taxId"
	formNumber        = "invoice.number"
	formDate          = "invoice.date"
	formCurrency      = "invoice.currency"
	formSubtotal      = "invoice.subtotal"
	formTaxPercent    = "invoice.taxPercent"
	formTotal         = "invoice.total"
	formPONumber      = "invoice.poNumber"
	formPODate        = "invoice.poDate"
	formItemDesc      = "item.description"
	formItemUnitPrice = "item.unitPrice"
	formItemQuantity  = "item.quantity"
	formItemTotal     = "item.total"
	formItemOrigPrice = "item.origUnitPrice"
	formItemOrigQty   = "item.origQuantity"
)

// BufferFromForm reconstruye el EditBuffer desde el POST del editor.
func BufferFromForm(c *fiber.Ctx) *EditBuffer {
	b := &EditBuffer{
		FileID:        c.FormValue(formFileID),
		FileName:      c.FormValue(formFileName),
		VendorName:    c.FormValue(formVendorName),
		VendorAddress: c.FormValue(formVendorAddress),
		VendorTaxID:   c.FormValue(formVendorTaxID),
		Number:        c.FormValue(formNumber),
		Date:          c.FormValue(formDate),
		Currency:      c.FormValue(formCurrency),
		Subtotal:      c.FormValue(formSubtotal),
		TaxPercent:    c.FormValue(formTaxPercent),
		Total:         c.FormValue(formTotal),
		PONumber:      c.FormValue(formPONumber),
		PODate:        c.FormValue(formPODate),
		Dirty:         c.FormValue(formDirty) == "true",
	}

	args := c.Request().PostArgs()
	desc := multi(args.PeekMulti(formItemDesc))
	price := multi(args.PeekMulti(formItemUnitPrice))
	qty := multi(args.PeekMulti(formItemQuantity))
	total := multi(args.PeekMulti(formItemTotal))
	origPrice := multi(args.PeekMulti(formItemOrigPrice))
	origQty := multi(args.PeekMulti(formItemOrigQty))

	// Cada línea parte de los valores con que se renderizó; sólo los factores
	// modificados pasan por SetLineItem y recalculan el total.
	b.LineItems = make([]LineItemRow, 0, len(desc))
	for i := range desc {
		b.LineItems = append(b.LineItems, LineItemRow{
			Description: desc[i],
			UnitPrice:   at(origPrice, i),
			Quantity:    at(origQty, i),
			Total:       at(total, i),
		})
	}
	for i := range b.LineItems {
		if p := at(price, i); !sameNumber(p, b.LineItems[i].UnitPrice) {
			_ = b.SetLineItem(i, FieldUnitPrice, p)
		}
		if q := at(qty, i); !sameNumber(q, b.LineItems[i].Quantity) {
			_ = b.SetLineItem(i, FieldQuantity, q)
		}
	}
	return b
}

// sameNumber compara dos valores del formulario como decimales ("3" == "3.00").
func sameNumber(a, b string) bool {
	da, errA := parseDecimal(a)
	db, errB := parseDecimal(b)
	if errA != nil || errB != nil {
		return strings.TrimSpace(a) == strings.TrimSpace(b)
	}
	return da.Equal(db)
}

func multi(values [][]byte) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
