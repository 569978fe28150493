package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/invoice-manager/internal/domain"
	"github.com/jhoicas/invoice-manager/internal/domain/entity"
	"github.com/jhoicas/invoice-manager/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceStore)(nil)

// InvoiceStore implementación en memoria de repository.InvoiceRepository (STORE_DRIVER=memory y tests).
type InvoiceStore struct {
	mu    sync.RWMutex
	seq   int64
	items map[string]*storedInvoice
}

type storedInvoice struct {
	inv entity.Invoice
	seq int64 // orden de inserción para desempatar createdAt iguales
}

// NewInvoiceStore crea un almacén vacío.
func NewInvoiceStore() *InvoiceStore {
	return &InvoiceStore{items: make(map[string]*storedInvoice)}
}

// Find filtra, ordena por createdAt descendente y pagina.
func (s *InvoiceStore) Find(_ context.Context, filter repository.InvoiceFilter, skip, limit int64) ([]*entity.Invoice, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(filter.Query)
	matched := make([]*storedInvoice, 0, len(s.items))
	for _, it := range s.items {
		if q == "" || matches(&it.inv, q) {
			matched = append(matched, it)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.inv.CreatedAt.Equal(b.inv.CreatedAt) {
			return a.inv.CreatedAt.After(b.inv.CreatedAt)
		}
		return a.seq > b.seq
	})

	total := int64(len(matched))
	out := make([]*entity.Invoice, 0)
	if skip < 0 {
		skip = 0
	}
	for i := skip; i < total && (limit <= 0 || i < skip+limit); i++ {
		out = append(out, clone(&matched[i].inv))
	}
	return out, total, nil
}

func matches(inv *entity.Invoice, q string) bool {
	return strings.Contains(strings.ToLower(inv.Vendor.Name), q) ||
		strings.Contains(strings.ToLower(inv.Invoice.Number), q) ||
		strings.Contains(strings.ToLower(inv.FileName), q)
}

// FindByID devuelve una copia del registro.
func (s *InvoiceStore) FindByID(_ context.Context, id string) (*entity.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(&it.inv), nil
}

// Insert asigna un id nuevo y guarda una copia.
func (s *InvoiceStore) Insert(_ context.Context, invoice *entity.Invoice) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New().String()
	c := clone(invoice)
	c.ID = id
	s.seq++
	s.items[id] = &storedInvoice{inv: *c, seq: s.seq}
	return id, nil
}

// Update reemplaza los campos de primer nivel presentes en el patch y fija updatedAt.
func (s *InvoiceStore) Update(_ context.Context, id string, patch entity.InvoicePatch) (*entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	next := clone(&it.inv)
	if patch.FileID != nil {
		next.FileID = *patch.FileID
	}
	if patch.FileName != nil {
		next.FileName = *patch.FileName
	}
	if patch.Vendor != nil {
		next.Vendor = cloneVendor(*patch.Vendor)
	}
	if patch.Invoice != nil {
		next.Invoice = cloneDetails(*patch.Invoice)
	}
	now := time.Now().UTC()
	next.UpdatedAt = &now
	it.inv = *next
	return clone(next), nil
}

// Delete elimina el registro.
func (s *InvoiceStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// ReferencedFileIDs conjunto de fileId en uso.
func (s *InvoiceStore) ReferencedFileIDs(_ context.Context) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]struct{}, len(s.items))
	for _, it := range s.items {
		if it.inv.FileID != "" {
			out[it.inv.FileID] = struct{}{}
		}
	}
	return out, nil
}

// clone copia profunda: los llamadores no comparten punteros con el almacén.
func clone(in *entity.Invoice) *entity.Invoice {
	out := *in
	out.Vendor = cloneVendor(in.Vendor)
	out.Invoice = cloneDetails(in.Invoice)
	if in.UpdatedAt != nil {
		t := *in.UpdatedAt
		out.UpdatedAt = &t
	}
	return &out
}

func cloneVendor(v entity.Vendor) entity.Vendor {
	v.Address = cloneStr(v.Address)
	v.TaxID = cloneStr(v.TaxID)
	return v
}

func cloneDetails(d entity.InvoiceDetails) entity.InvoiceDetails {
	d.Currency = cloneStr(d.Currency)
	d.PONumber = cloneStr(d.PONumber)
	d.PODate = cloneStr(d.PODate)
	d.Subtotal = cloneF(d.Subtotal)
	d.TaxPercent = cloneF(d.TaxPercent)
	d.Total = cloneF(d.Total)
	if d.LineItems != nil {
		d.LineItems = append([]entity.LineItem(nil), d.LineItems...)
	}
	return d
}

func cloneStr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneF(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
