package repository

import (
	"context"
	"io"

	"github.com/jhoicas/invoice-manager/internal/domain/entity"
)

// FileStore puerto del almacén de blobs (PDFs).
// Stat, Open y Delete devuelven domain.ErrNotFound si el id no existe o es inválido.
type FileStore interface {
	Upload(ctx context.Context, name string, meta entity.FileMetadata, r io.Reader) (string, error)
	Stat(ctx context.Context, id string) (*entity.StoredFile, error)
	Open(ctx context.Context, id string) (io.ReadCloser, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]entity.StoredFile, error)
}
