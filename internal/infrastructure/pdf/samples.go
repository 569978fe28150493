package pdf

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-manager/internal/domain/entity"
)

var sampleVendors = []struct {
	name, address, taxID, prefix string
}{
	{"ACME Corporation", "123 Business St, City, State 12345", "12-3456789", "INV"},
	{"TechCorp Industries", "456 Tech Ave, Silicon Valley, CA 94000", "98-7654321", "TC"},
	{"Northwind Supplies", "789 Harbor Rd, Seattle, WA 98101", "45-6789012", "NW"},
	{"Globex Logistics", "12 Port Way, Rotterdam", "NL-4455667", "GLX"},
}

var sampleItems = []entity.LineItem{
	{Description: "Professional Services", UnitPrice: 100},
	{Description: "Software License", UnitPrice: 500},
	{Description: "Office Chairs", UnitPrice: 160},
	{Description: "Freight", UnitPrice: 75.5},
	{Description: "Support Plan", UnitPrice: 49.99},
}

// SampleInvoice construye una factura de muestra determinista para el índice n.
// Los totales se calculan con decimal para evitar errores de redondeo.
func SampleInvoice(n int, base time.Time) *entity.Invoice {
	v := sampleVendors[n%len(sampleVendors)]
	currency := "USD"
	taxPercent := float64(5 + (n%3)*2)
	address, taxID := v.address, v.taxID
	poNumber := fmt.Sprintf("PO-%d-%03d", base.Year(), n+1)
	poDate := base.AddDate(0, 0, -3).Format("2006-01-02")

	count := 1 + n%3
	items := make([]entity.LineItem, 0, count)
	subtotal := decimal.Zero
	for i := 0; i < count; i++ {
		it := sampleItems[(n+i)%len(sampleItems)]
		it.Quantity = float64(1 + (n+i)%7)
		total := decimal.NewFromFloat(it.UnitPrice).Mul(decimal.NewFromFloat(it.Quantity)).Round(2)
		it.Total = total.InexactFloat64()
		subtotal = subtotal.Add(total)
		items = append(items, it)
	}
	tax := subtotal.Mul(decimal.NewFromFloat(taxPercent)).Div(decimal.NewFromInt(100)).Round(2)
	sub := subtotal.InexactFloat64()
	grand := subtotal.Add(tax).InexactFloat64()

	number := fmt.Sprintf("%s-%d-%03d", v.prefix, base.Year(), n+1)
	return &entity.Invoice{
		FileName: fmt.Sprintf("%s.pdf", number),
		Vendor:   entity.Vendor{Name: v.name, Address: &address, TaxID: &taxID},
		Invoice: entity.InvoiceDetails{
			Number:     number,
			Date:       base.Format("2006-01-02"),
			Currency:   &currency,
			Subtotal:   &sub,
			TaxPercent: &taxPercent,
			Total:      &grand,
			PONumber:   &poNumber,
			PODate:     &poDate,
			LineItems:  items,
		},
	}
}
