package mongodb

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/invoice-manager/internal/domain"
	"github.com/jhoicas/invoice-manager/internal/domain/entity"
	"github.com/jhoicas/invoice-manager/internal/domain/repository"
)

var _ repository.FileStore = (*GridFSStore)(nil)

// GridFSStore implementación de FileStore sobre un bucket GridFS (por defecto "pdfs").
// Las operaciones de stream del bucket no reciben contexto en esta versión del driver.
type GridFSStore struct {
	bucket *gridfs.Bucket
}

// NewGridFSStore abre el bucket configurado.
func NewGridFSStore(c *Client) (*GridFSStore, error) {
	bucket, err := gridfs.NewBucket(c.Database(), options.GridFSBucket().SetName(c.cfg.FilesBucket))
	if err != nil {
		return nil, fmt.Errorf("abrir bucket GridFS: %w", err)
	}
	return &GridFSStore{bucket: bucket}, nil
}

// gridFSFile documento de la colección <bucket>.files.
type gridFSFile struct {
	ID         primitive.ObjectID  `bson:"_id"`
	Length     int64               `bson:"length"`
	Filename   string              `bson:"filename"`
	UploadDate time.Time           `bson:"uploadDate"`
	Metadata   entity.FileMetadata `bson:"metadata"`
}

func (f gridFSFile) toEntity() entity.StoredFile {
	return entity.StoredFile{
		ID:         f.ID.Hex(),
		Name:       f.Filename,
		Length:     f.Length,
		UploadDate: f.UploadDate,
		Metadata:   f.Metadata,
	}
}

// Upload escribe el stream en el bucket con los metadatos dados.
func (s *GridFSStore) Upload(_ context.Context, name string, meta entity.FileMetadata, r io.Reader) (string, error) {
	if meta.UploadDate.IsZero() {
		meta.UploadDate = time.Now().UTC()
	}
	oid, err := s.bucket.UploadFromStream(name, r, options.GridFSUpload().SetMetadata(meta))
	if err != nil {
		return "", fmt.Errorf("gridfs upload: %w", err)
	}
	return oid.Hex(), nil
}

// Stat busca el documento del archivo en <bucket>.files.
func (s *GridFSStore) Stat(ctx context.Context, id string) (*entity.StoredFile, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	cur, err := s.bucket.Find(bson.M{"_id": oid})
	if err != nil {
		return nil, fmt.Errorf("gridfs find: %w", err)
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return nil, fmt.Errorf("gridfs find: %w", err)
		}
		return nil, domain.ErrNotFound
	}
	var f gridFSFile
	if err := cur.Decode(&f); err != nil {
		return nil, fmt.Errorf("gridfs decode: %w", err)
	}
	sf := f.toEntity()
	return &sf, nil
}

// Open abre un stream de descarga.
func (s *GridFSStore) Open(_ context.Context, id string) (io.ReadCloser, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	ds, err := s.bucket.OpenDownloadStream(oid)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("gridfs download: %w", err)
	}
	return ds, nil
}

// Delete elimina el archivo y sus chunks.
func (s *GridFSStore) Delete(_ context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.bucket.Delete(oid); err != nil {
		if isNotFound(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("gridfs delete: %w", err)
	}
	return nil
}

// List recorre todos los archivos del bucket.
func (s *GridFSStore) List(ctx context.Context) ([]entity.StoredFile, error) {
	cur, err := s.bucket.Find(bson.M{}, options.GridFSFind().SetSort(bson.D{{Key: "uploadDate", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("gridfs list: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]entity.StoredFile, 0)
	for cur.Next(ctx) {
		var f gridFSFile
		if err := cur.Decode(&f); err != nil {
			return nil, fmt.Errorf("gridfs decode: %w", err)
		}
		out = append(out, f.toEntity())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("gridfs list: %w", err)
	}
	return out, nil
}
