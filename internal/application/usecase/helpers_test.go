package usecase

import (
	"context"
	"errors"
	"io"

	"github.com/jhoicas/invoice-manager/internal/application/dto"
	"github.com/jhoicas/invoice-manager/internal/application/ports"
	"github.com/jhoicas/invoice-manager/internal/domain/entity"
	"github.com/jhoicas/invoice-manager/internal/domain/repository"
)

// failingDeleteStore envuelve un FileStore y hace fallar Delete.
type failingDeleteStore struct {
	repository.FileStore
	calls int
}

func (s *failingDeleteStore) Delete(_ context.Context, _ string) error {
	s.calls++
	return errors.New("gridfs caído")
}

// fakeInspector devuelve un número fijo de páginas o un error, y consume el lector.
type fakeInspector struct {
	pages int
	err   error
}

func (f fakeInspector) PageCount(rs io.ReadSeeker) (int, error) {
	_, _ = io.ReadAll(rs)
	return f.pages, f.err
}

// stubExtractor proveedor configurable para pruebas.
type stubExtractor struct {
	name   string
	result *dto.ExtractedInvoice
	err    error
	calls  int
}

func (s *stubExtractor) Name() string { return s.name }

func (s *stubExtractor) ExtractInvoice(_ context.Context, _ string) (*dto.ExtractedInvoice, error) {
	s.calls++
	return s.result, s.err
}

type stubResolver struct {
	primary, fallback ports.InvoiceExtractor
	asked             string
}

func (r *stubResolver) Resolve(name string) (ports.InvoiceExtractor, ports.InvoiceExtractor) {
	r.asked = name
	return r.primary, r.fallback
}

type stubExporter struct {
	got []*entity.Invoice
}

func (s *stubExporter) Export(in []*entity.Invoice) ([]byte, error) {
	s.got = in
	return []byte("ok"), nil
}
func (s *stubExporter) ContentType() string   { return "text/plain" }
func (s *stubExporter) FileExtension() string { return ".txt" }
