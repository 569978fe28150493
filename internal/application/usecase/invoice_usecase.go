package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/invoice-manager/internal/application/dto"
	"github.com/jhoicas/invoice-manager/internal/domain"
	"github.com/jhoicas/invoice-manager/internal/domain/entity"
	"github.com/jhoicas/invoice-manager/internal/domain/repository"
	"github.com/jhoicas/invoice-manager/pkg/logger"
)

// InvoiceUseCase casos de uso CRUD y búsqueda de facturas.
type InvoiceUseCase struct {
	repo  repository.InvoiceRepository
	files repository.FileStore
	log   *logger.Logger
	now   func() time.Time
}

// NewInvoiceUseCase construye el caso de uso. files se usa solo para el borrado best-effort del PDF.
func NewInvoiceUseCase(repo repository.InvoiceRepository, files repository.FileStore, log *logger.Logger) *InvoiceUseCase {
	return &InvoiceUseCase{
		repo:  repo,
		files: files,
		log:   log.Named("invoices"),
		now:   time.Now,
	}
}

// List busca y pagina. Una página más allá del final devuelve lista vacía.
func (uc *InvoiceUseCase) List(ctx context.Context, in dto.InvoiceSearchRequest) (*dto.InvoiceListResponse, error) {
	page := in.PageRequest
	page.Normalize()

	items, total, err := uc.repo.Find(ctx, repository.InvoiceFilter{Query: in.Query}, page.Skip(), int64(page.Limit))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*entity.Invoice{}
	}
	return &dto.InvoiceListResponse{
		Invoices:   items,
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	}, nil
}

// All devuelve todas las coincidencias recorriendo el repositorio por páginas.
func (uc *InvoiceUseCase) All(ctx context.Context, query string) ([]*entity.Invoice, error) {
	const batch = dto.MaxLimit
	var out []*entity.Invoice
	for skip := int64(0); ; skip += batch {
		items, total, err := uc.repo.Find(ctx, repository.InvoiceFilter{Query: query}, skip, batch)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
		if len(items) < batch || skip+batch >= total {
			return out, nil
		}
	}
}

// Get obtiene una factura por id.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*entity.Invoice, error) {
	return uc.repo.FindByID(ctx, id)
}

// Create persiste la factura. createdAt lo fija el servidor.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*entity.Invoice, error) {
	inv := &entity.Invoice{
		FileID:    in.FileID,
		FileName:  in.FileName,
		Vendor:    in.Vendor,
		Invoice:   in.Invoice,
		CreatedAt: uc.now().UTC().Truncate(time.Millisecond),
	}
	if inv.Invoice.LineItems == nil {
		inv.Invoice.LineItems = []entity.LineItem{}
	}
	id, err := uc.repo.Insert(ctx, inv)
	if err != nil {
		return nil, err
	}
	inv.ID = id
	uc.log.Info().Str("invoice_id", id).Str("file_id", inv.FileID).Msg("factura creada")
	return inv, nil
}

// Update reemplaza los campos de primer nivel presentes. Sin campos devuelve el registro sin cambios.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.UpdateInvoiceRequest) (*entity.Invoice, error) {
	patch := in.ToPatch()
	if patch.IsEmpty() {
		return uc.repo.FindByID(ctx, id)
	}
	if patch.Invoice != nil && patch.Invoice.LineItems == nil {
		patch.Invoice.LineItems = []entity.LineItem{}
	}
	return uc.repo.Update(ctx, id, patch)
}

// Delete borra el registro y luego, best-effort, su PDF.
// Un fallo al borrar el archivo se registra y no se propaga: puede quedar un blob huérfano.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	inv, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	if inv.FileID == "" {
		return nil
	}
	if err := uc.files.Delete(ctx, inv.FileID); err != nil {
		ev := uc.log.Warn()
		if errors.Is(err, domain.ErrNotFound) {
			ev = uc.log.Debug()
		}
		ev.Err(err).Str("invoice_id", id).Str("file_id", inv.FileID).Msg("no se pudo borrar el PDF de la factura")
	}
	return nil
}
