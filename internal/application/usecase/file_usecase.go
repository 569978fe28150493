package usecase

import (
	"context"
	"fmt"
	"io"
	"mime"
	"strings"
	"time"

	"github.com/jhoicas/invoice-manager/internal/application/dto"
	"github.com/jhoicas/invoice-manager/internal/application/ports"
	"github.com/jhoicas/invoice-manager/internal/domain"
	"github.com/jhoicas/invoice-manager/internal/domain/entity"
	"github.com/jhoicas/invoice-manager/internal/domain/repository"
	"github.com/jhoicas/invoice-manager/pkg/logger"
)

// UploadInput archivo recibido en POST /api/files/upload.
type UploadInput struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.ReadSeeker // nil si el formulario no trae la parte "pdf"
}

// FileUseCase carga, descarga y borrado de PDFs.
type FileUseCase struct {
	store     repository.FileStore
	inspector ports.PDFInspector
	maxBytes  int64
	log       *logger.Logger
}

// NewFileUseCase construye el caso de uso. inspector puede ser nil (sin conteo de páginas).
func NewFileUseCase(store repository.FileStore, inspector ports.PDFInspector, maxBytes int64, log *logger.Logger) *FileUseCase {
	return &FileUseCase{store: store, inspector: inspector, maxBytes: maxBytes, log: log.Named("files")}
}

// MaxBytes tamaño máximo aceptado.
func (uc *FileUseCase) MaxBytes() int64 { return uc.maxBytes }

// Validate aplica las reglas de carga sin tocar el almacén.
func (uc *FileUseCase) Validate(in UploadInput) error {
	if in.Body == nil {
		return domain.ErrMissingFile
	}
	if !IsPDFContentType(in.ContentType) {
		return domain.ErrUnsupportedMediaType
	}
	if in.Size > uc.maxBytes {
		return domain.ErrFileTooLarge
	}
	return nil
}

// IsPDFContentType acepta application/pdf con o sin parámetros.
func IsPDFContentType(ct string) bool {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.EqualFold(strings.TrimSpace(ct), entity.PDFContentType)
	}
	return mt == entity.PDFContentType
}

// Upload valida, cuenta páginas (best-effort) y guarda el archivo.
func (uc *FileUseCase) Upload(ctx context.Context, in UploadInput) (*dto.UploadResponse, error) {
	if err := uc.Validate(in); err != nil {
		return nil, err
	}

	meta := entity.FileMetadata{
		ContentType:  entity.PDFContentType,
		OriginalName: in.Name,
		Size:         in.Size,
		UploadDate:   time.Now().UTC(),
	}
	if uc.inspector != nil {
		if n, err := uc.inspector.PageCount(in.Body); err != nil {
			uc.log.Warn().Err(err).Str("file_name", in.Name).Msg("no se pudo contar páginas del PDF")
		} else {
			meta.PageCount = n
		}
		if _, err := in.Body.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rebobinar archivo: %w", err)
		}
	}

	id, err := uc.store.Upload(ctx, in.Name, meta, in.Body)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("file_id", id).Int64("size", in.Size).Int("pages", meta.PageCount).Msg("PDF almacenado")
	return &dto.UploadResponse{FileID: id, FileName: in.Name, Size: in.Size}, nil
}

// Download devuelve los metadatos y un stream del archivo. El llamador cierra el stream.
func (uc *FileUseCase) Download(ctx context.Context, id string) (*entity.StoredFile, io.ReadCloser, error) {
	info, err := uc.store.Stat(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := uc.store.Open(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return info, rc, nil
}

// Delete borra el archivo.
func (uc *FileUseCase) Delete(ctx context.Context, id string) error {
	return uc.store.Delete(ctx, id)
}
