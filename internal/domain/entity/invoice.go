package entity

import "time"

// Invoice representa el registro de una factura cargada: datos del proveedor,
// cabecera, líneas de detalle y la referencia al PDF almacenado (FileID).
// Los campos opcionales son punteros con omitempty: si no vienen, no se persisten
// ni se serializan como null.
type Invoice struct {
	ID        string         `json:"_id,omitempty" bson:"-"`
	FileID    string         `json:"fileId" bson:"fileId"`
	FileName  string         `json:"fileName" bson:"fileName"`
	Vendor    Vendor         `json:"vendor" bson:"vendor"`
	Invoice   InvoiceDetails `json:"invoice" bson:"invoice"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt *time.Time     `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// Vendor datos del emisor de la factura.
type Vendor struct {
	Name    string  `json:"name" bson:"name"`
	Address *string `json:"address,omitempty" bson:"address,omitempty"`
	TaxID   *string `json:"taxId,omitempty" bson:"taxId,omitempty"`
}

// InvoiceDetails cabecera y totales. Total es libre: no se valida contra la suma de líneas.
type InvoiceDetails struct {
	Number     string     `json:"number" bson:"number"`
	Date       string     `json:"date" bson:"date"` // YYYY-MM-DD
	Currency   *string    `json:"currency,omitempty" bson:"currency,omitempty"`
	Subtotal   *float64   `json:"subtotal,omitempty" bson:"subtotal,omitempty"`
	TaxPercent *float64   `json:"taxPercent,omitempty" bson:"taxPercent,omitempty"`
	Total      *float64   `json:"total,omitempty" bson:"total,omitempty"`
	PONumber   *string    `json:"poNumber,omitempty" bson:"poNumber,omitempty"`
	PODate     *string    `json:"poDate,omitempty" bson:"poDate,omitempty"`
	LineItems  []LineItem `json:"lineItems" bson:"lineItems"`
}

// LineItem línea de detalle. Total debería ser UnitPrice * Quantity; solo el editor lo recalcula.
type LineItem struct {
	Description string  `json:"description" bson:"description"`
	UnitPrice   float64 `json:"unitPrice" bson:"unitPrice"`
	Quantity    float64 `json:"quantity" bson:"quantity"`
	Total       float64 `json:"total" bson:"total"`
}

// InvoicePatch campos de primer nivel a reemplazar en un PUT (merge superficial).
// Un campo nil no se toca.
type InvoicePatch struct {
	FileID   *string
	FileName *string
	Vendor   *Vendor
	Invoice  *InvoiceDetails
}

// IsEmpty indica si el patch no modifica ningún campo.
func (p InvoicePatch) IsEmpty() bool {
	return p.FileID == nil && p.FileName == nil && p.Vendor == nil && p.Invoice == nil
}
