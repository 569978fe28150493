package memory

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/invoice-manager/internal/domain"
	"github.com/jhoicas/invoice-manager/internal/domain/entity"
	"github.com/jhoicas/invoice-manager/internal/domain/repository"
)

var _ repository.FileStore = (*FileStore)(nil)

// FileStore almacén de blobs en memoria.
type FileStore struct {
	mu    sync.RWMutex
	files map[string]*memFile
}

type memFile struct {
	info entity.StoredFile
	data []byte
}

// NewFileStore crea un almacén vacío.
func NewFileStore() *FileStore {
	return &FileStore{files: make(map[string]*memFile)}
}

// Upload lee todo el reader y guarda los bytes con sus metadatos.
func (s *FileStore) Upload(_ context.Context, name string, meta entity.FileMetadata, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	id := uuid.New().String()
	now := time.Now().UTC()
	if meta.UploadDate.IsZero() {
		meta.UploadDate = now
	}
	s.mu.Lock()
	s.files[id] = &memFile{
		info: entity.StoredFile{
			ID:         id,
			Name:       name,
			Length:     int64(len(data)),
			UploadDate: meta.UploadDate,
			Metadata:   meta,
		},
		data: data,
	}
	s.mu.Unlock()
	return id, nil
}

// Stat devuelve los metadatos del archivo.
func (s *FileStore) Stat(_ context.Context, id string) (*entity.StoredFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	info := f.info
	return &info, nil
}

// Open devuelve un lector sobre los bytes guardados.
func (s *FileStore) Open(_ context.Context, id string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

// Delete elimina el archivo.
func (s *FileStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.files, id)
	return nil
}

// List devuelve todos los archivos ordenados por fecha de carga.
func (s *FileStore) List(_ context.Context) ([]entity.StoredFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.StoredFile, 0, len(s.files))
	for _, f := range s.files {
		out = append(out, f.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadDate.Before(out[j].UploadDate) })
	return out, nil
}

// Backdate modifica la fecha de carga de un archivo. Útil para probar la conciliación.
func (s *FileStore) Backdate(id string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.files[id]; ok {
		f.info.UploadDate = at
		f.info.Metadata.UploadDate = at
	}
}
