package repository

import (
	"context"

	"github.com/jhoicas/invoice-manager/internal/domain/entity"
)

// InvoiceFilter criterio de búsqueda del listado. Query vacío = todos los registros.
// Query se compara como subcadena literal, sin distinguir mayúsculas, contra
// vendor.name, invoice.number y fileName (OR).
type InvoiceFilter struct {
	Query string
}

// InvoiceRepository define el puerto de persistencia para Invoice (DIP).
// Las implementaciones devuelven domain.ErrNotFound cuando el id no existe o es inválido.
type InvoiceRepository interface {
	// Find devuelve la página pedida ordenada por createdAt descendente y el total de coincidencias.
	Find(ctx context.Context, filter InvoiceFilter, skip, limit int64) ([]*entity.Invoice, int64, error)
	FindByID(ctx context.Context, id string) (*entity.Invoice, error)
	Insert(ctx context.Context, invoice *entity.Invoice) (string, error)
	Update(ctx context.Context, id string, patch entity.InvoicePatch) (*entity.Invoice, error)
	Delete(ctx context.Context, id string) error
	// ReferencedFileIDs devuelve el conjunto de fileId referenciados por alguna factura.
	ReferencedFileIDs(ctx context.Context) (map[string]struct{}, error)
}
