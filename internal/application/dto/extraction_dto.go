package dto

import "github.com/jhoicas/invoice-manager/internal/domain/entity"

// ExtractRequest body para POST /api/invoices/extract. Model es el nombre del proveedor (gemini, groq, claude).
type ExtractRequest struct {
	FileID string `json:"fileId"`
	Model  string `json:"model"`
}

// ExtractedInvoice campos estructurados devueltos por un proveedor (o por los datos simulados).
type ExtractedInvoice struct {
	Vendor  entity.Vendor         `json:"vendor"`
	Invoice entity.InvoiceDetails `json:"invoice"`
}

// ExtractResponse respuesta de la extracción; misma forma que APIResponse con data tipada.
type ExtractResponse struct {
	Success bool              `json:"success"`
	Data    *ExtractedInvoice `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
}
