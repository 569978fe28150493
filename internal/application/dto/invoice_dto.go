package dto

import "github.com/jhoicas/invoice-manager/internal/domain/entity"

// CreateInvoiceRequest body para POST /api/invoices.
// createdAt, si viene, se ignora: lo fija el servidor.
type CreateInvoiceRequest struct {
	FileID   string                `json:"fileId"`
	FileName string                `json:"fileName"`
	Vendor   entity.Vendor         `json:"vendor"`
	Invoice  entity.InvoiceDetails `json:"invoice"`
}

// UpdateInvoiceRequest body para PUT /api/invoices/:id. Merge de campos de primer nivel:
// los ausentes no se tocan, los presentes se reemplazan completos.
type UpdateInvoiceRequest struct {
	FileID   *string                `json:"fileId,omitempty"`
	FileName *string                `json:"fileName,omitempty"`
	Vendor   *entity.Vendor         `json:"vendor,omitempty"`
	Invoice  *entity.InvoiceDetails `json:"invoice,omitempty"`
}

// ToPatch convierte el request al patch de dominio.
func (r UpdateInvoiceRequest) ToPatch() entity.InvoicePatch {
	return entity.InvoicePatch{
		FileID:   r.FileID,
		FileName: r.FileName,
		Vendor:   r.Vendor,
		Invoice:  r.Invoice,
	}
}

// InvoiceSearchRequest query de GET /api/invoices.
type InvoiceSearchRequest struct {
	Query string `query:"q"`
	PageRequest
}

// InvoiceListResponse data de GET /api/invoices.
type InvoiceListResponse struct {
	Invoices   []*entity.Invoice `json:"invoices"`
	Pagination Pagination        `json:"pagination"`
}
